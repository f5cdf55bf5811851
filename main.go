package main

import (
	"github.com/nilsdeppe/FlameGraphFilter/pkg/cmd"
)

func main() {
	cmd.Execute()
}

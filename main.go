package main

import (
	"os"

	"github.com/flrdv/pycalc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

package main

import (
	"github.com/openscreening/cslimport/cmd"
)

func main() {
	cmd.Execute()
}

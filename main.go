package main

import (
	"github.com/vela-sec/vela/cmd"
)

func main() {
	cmd.Execute()
}

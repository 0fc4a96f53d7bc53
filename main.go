package main

import "github.com/kozaktomas/slide-sheets/cmd"

func main() {
	cmd.Execute()
}

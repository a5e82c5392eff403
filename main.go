package main

import "github.com/mgatere/termfolio/cmd"

func main() {
	cmd.Execute()
}

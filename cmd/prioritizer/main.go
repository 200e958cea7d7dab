package main

import "prioritizer/cmd/prioritizer/commands"

func main() {
	commands.Execute()
}

package main

import "musify/cmd/cli/command"

func main() {
	command.Execute()
}

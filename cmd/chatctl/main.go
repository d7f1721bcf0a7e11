package main

import (
	"os"

	"chat-server/cmd/chatctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/driftchat/driftchat/internal/cli"
	"github.com/driftchat/driftchat/internal/logging"
)

func main() {
	// Initialize logging
	logging.Init()
	cli.Execute()
}

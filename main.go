package main

import (
	"github.com/jungh5/shcard-ceo-bot/cmd/handlers"
	"github.com/jungh5/shcard-ceo-bot/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}

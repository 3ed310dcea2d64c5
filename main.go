package main

import (
	"os"

	"eventhub/core/logger"
	"eventhub/core/server"
)

// @title EventHub API
// @version 1.0
// @description Community event management API: events, categories, RSVPs, comments and ratings.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}

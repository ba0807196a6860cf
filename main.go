package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/occurrence-registration-api/cmd/app"
)

// @title           Occurrence registration API
// @version         1.0
// @description     Registration of members and their dependents to one-off and recurring events.
//
// @contact.name   API Support
//
// @BasePath  /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

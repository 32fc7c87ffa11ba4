package main

import (
	"log"

	"journal-service/internal/app"
)

// @title Journal Service API
// @version 1.0
// @description Personal productivity journal with AI-assisted classification,
// @description category management, goal tracking and weekly summaries

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Omit the header entirely to act as the guest user.

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

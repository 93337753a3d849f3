package main

import (
	"os"

	"github.com/campusadmin/api/internal/pkg/logger"
	"github.com/campusadmin/api/internal/server"
)

// @title Campus Administration API
// @version 1.0
// @description REST API for managing departments, teachers, students, courses, enrollments, grades and attendance

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal or a fatal server error
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

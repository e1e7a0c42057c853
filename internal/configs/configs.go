/*
Package configs is responsible for loading and parsing the application's configuration settings.

This file configures the development room server by reading operating system environment
variables, including the running environment, port, CORS allowed origins, and room capacity.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the room server to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Room Settings
	RoomCapacity int
}

// LoadConfig reads and parses the server configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and any
// error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Room Settings ---
	capacityStr := os.Getenv("ROOM_CAPACITY")
	if capacityStr == "" {
		capacityStr = "50"
	}
	capacity, err := strconv.Atoi(capacityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ROOM_CAPACITY environment variable: %w", err)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("ROOM_CAPACITY must not be negative, got %d", capacity)
	}
	cfg.RoomCapacity = capacity

	return cfg, nil
}

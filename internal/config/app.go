package config

import "os"

const defaultPort = ":8080"

// Port returns the listen address, e.g. ":8080".
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

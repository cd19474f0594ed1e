// Package main implements the entry point for the Mochi API server,
// which manages cards, their links to externally-owned generic logic
// records, and the bearer-token gate in front of both.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, the database, and the
// service dependencies, then runs the HTTP server until it is signaled
// to stop.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server terminated with error: %v", err)
	}
}

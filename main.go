package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/okhramov/impact-matcher/cmd"
)

func main() {
	// A local .env is a convenience; real deployments configure through the
	// environment or a mounted secret file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

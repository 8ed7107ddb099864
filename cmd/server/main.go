package main

import (
	"os"

	"parley/backend/internal/app"
)

// @title        Parley API
// @version      1.0
// @description  Chat sessions with streamed completions, rolling context summaries and search-augmented answers over an OpenAI-compatible upstream.
// @host         localhost:8000
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}

package main

import (
	"github.com/joho/godotenv"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/app/server"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	server.Run()
}

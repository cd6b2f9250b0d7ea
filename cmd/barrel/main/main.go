package main

import (
	"os"

	"github.com/arthur-debert/barrel/cmd/barrel"
	"github.com/joho/godotenv"
)

func main() {
	// BARREL_* settings may come from a .env file in the working directory
	_ = godotenv.Load()

	os.Exit(barrel.Main(os.Args[1:]))
}

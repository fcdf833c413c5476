package main

import (
	"log"

	"minimarks/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("minimarks exited: %v", err)
	}
}

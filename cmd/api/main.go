package main

import (
	"context"
	"log"

	"github.com/aquaflow/aquaflow-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("aquaflow api exited: %v", err)
	}
}

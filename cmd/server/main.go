package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := App().Run(os.Args); err != nil {
		log.Fatalf("travel journal: %v", err)
	}
}

package main

import (
	"log"

	"github.com/kindredlabs/matchcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"wholesomemarket.io/booking/config"
)

func main() {

	// Local development reads a .env file; deployed environments set the
	// variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	server, err := InitializeBookingService()
	if err != nil {
		log.Fatal(err)
		return
	}

	if err = server.Run(config.ServerStartPort); err != nil {
		log.Fatal(err.Error())
	}

}

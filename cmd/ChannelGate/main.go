package main

import (
	"log"

	"github.com/leirbagxis/ChannelGate/internal/api"
	"github.com/leirbagxis/ChannelGate/internal/database"
)

func main() {
	db := database.InitDB()
	if err := api.StartApi(db); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"fmt"
	"log"

	"openclass/lms-backend/config"
	"openclass/lms-backend/internal/database"
	"openclass/lms-backend/internal/route"
)

func main() {
	config.MustLoad("config.yaml")
	database.InitDatabase()

	r := route.SetupRouter(database.GetDB())

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

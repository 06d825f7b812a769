package main

import (
	"log"

	"vendura-api-io/api/internal/routers"
	"vendura-api-io/api/pkg/util"
)

func main() {
	router := routers.InitRoute()

	port := util.LoadEnvFor("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

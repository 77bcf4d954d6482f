package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"retailpos/m/internal/api"
	"retailpos/m/internal/config"
	"retailpos/m/internal/database"
	"retailpos/m/internal/migrations"
	"retailpos/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadProducts(db, "assets/products.csv")

	handler := api.New(db, cfg.AllowedOrigins)

	log.Printf("POS server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

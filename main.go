package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/mitoneko/neko-todo/auth"
	"github.com/mitoneko/neko-todo/config"
	"github.com/mitoneko/neko-todo/database"
	"github.com/mitoneko/neko-todo/handlers"
	"github.com/mitoneko/neko-todo/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer db.Close()
	log.Println("Successfully connected to the nekotodo database!")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.InitSchema(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to create core tables: %v", err)
	}
	cancel()

	h := handlers.NewHandlers(auth.NewManager(db), todo.NewService(db), cfg.DefaultSortOrder, cfg.DefaultOnlyIncomplete)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Server listening on :%s...", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

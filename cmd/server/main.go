package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayboard/internal/config"
	"dayboard/internal/db"
	"dayboard/internal/handlers"
	"dayboard/internal/services"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	categories := store.NewCategoryStore(database)
	accounts := store.NewAccountStore(database)
	timeLogs := store.NewTimeLogStore(database)
	todos := store.NewTodoStore(database)
	entries := store.NewEntryStore(database)
	transfers := store.NewTransferStore(database)
	notes := store.NewNoteStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	tracker := services.NewTrackerService(timeLogs, hub, cfg.DiscardUnder, time.Now, uuid.NewString)
	if err := tracker.Recover(context.Background()); err != nil {
		log.Fatalf("failed to recover tracker state: %v", err)
	}
	defer tracker.Close()

	ledger := services.NewLedgerService(txRunner, accounts, entries, transfers, hub)
	snapshots := services.NewSnapshotService(categories, accounts, timeLogs, todos, entries, transfers, time.Now)

	handler := handlers.New(cfg, categories, accounts, timeLogs, todos, entries, transfers, notes, tracker, ledger, snapshots, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("dayboard API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

package handlers

import (
	"net/http"
	"time"

	"dayboard/internal/config"
	"dayboard/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg        config.Config
	categories CategoryStore
	accounts   AccountStore
	timeLogs   TimeLogStore
	todos      TodoStore
	entries    EntryStore
	transfers  TransferStore
	notes      NoteStore
	tracker    TrackerService
	ledger     LedgerService
	snapshots  SnapshotService
	hub        *websocket.Hub
	now        func() time.Time
}

func New(cfg config.Config, categories CategoryStore, accounts AccountStore, timeLogs TimeLogStore, todos TodoStore, entries EntryStore, transfers TransferStore, notes NoteStore, tracker TrackerService, ledger LedgerService, snapshots SnapshotService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:        cfg,
		categories: categories,
		accounts:   accounts,
		timeLogs:   timeLogs,
		todos:      todos,
		entries:    entries,
		transfers:  transfers,
		notes:      notes,
		tracker:    tracker,
		ledger:     ledger,
		snapshots:  snapshots,
		hub:        hub,
		now:        time.Now,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/dashboard", h.Dashboard)

	router.Route("/tracker", func(r chi.Router) {
		r.Get("/", h.TrackerStatus)
		r.Post("/start", h.StartTracking)
		r.Post("/stop", h.StopTracking)
	})

	router.Post("/time_logs", h.CreateTimeLog)

	router.Route("/todos", func(r chi.Router) {
		r.Get("/", h.ListTodos)
		r.Post("/", h.CreateTodo)
		r.Post("/{id}/toggle", h.ToggleTodo)
		r.Post("/{id}/rollover", h.RolloverTodo)
		r.Delete("/{id}", h.DeleteTodo)
	})

	router.Route("/entries", func(r chi.Router) {
		r.Get("/", h.ListEntries)
		r.Post("/", h.CreateEntry)
		r.Put("/{id}/description", h.UpdateEntryDescription)
		r.Delete("/{id}", h.DeleteEntry)
	})

	router.Route("/transfers", func(r chi.Router) {
		r.Get("/", h.ListTransfers)
		r.Post("/", h.CreateTransfer)
		r.Delete("/{id}", h.DeleteTransfer)
	})

	router.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Get("/self-check", h.SelfCheck)
		r.Get("/{id}/history", h.AccountHistory)
	})

	router.Get("/categories", h.ListCategories)
	router.Post("/categories", h.CreateCategory)

	router.Get("/notes", h.ListNotes)
	router.Post("/notes", h.CreateNote)

	router.Get("/ws/changes", h.WSChanges)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

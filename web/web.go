// Package web exposes the bookkeeping core over a JSON HTTP API: account
// CRUD, paginated transaction listing and creation, report generation and
// the dashboard summary, plus a server-sent-events stream that fires
// whenever the underlying data changes.
//
// The server has no authentication and is intended to be bound to
// localhost.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"daybook/ledger"
)

// Server serves the JSON API over a ledger.Store.
type Server struct {
	Addr string
	Log  *slog.Logger

	// WatchPath, when set, is a file watched for external writes (the
	// SQLite database file); changes are broadcast to SSE clients so
	// open dashboards refresh without polling.
	WatchPath string

	store    ledger.Store
	registry *ledger.Registry
	book     *ledger.Ledger

	sseMu      sync.Mutex
	sseClients map[chan string]struct{}
}

// New creates a server over the given store.
func New(addr string, store ledger.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Addr:       addr,
		Log:        log,
		store:      store,
		registry:   ledger.NewRegistry(store),
		book:       ledger.NewLedger(store),
		sseClients: make(map[chan string]struct{}),
	}
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.Addr,
		Handler:        s.router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)

	if s.WatchPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		if err := watcher.Add(s.WatchPath); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", s.WatchPath, err)
		}
		g.Go(func() error {
			s.runWatcher(ctx, watcher)
			return nil
		})
	}

	g.Go(func() error {
		s.Log.Info("listening", "addr", s.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/account-types", s.handleListAccountTypes)
	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/reports", s.handleGenerateReport)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// runWatcher debounces file events before broadcasting; editors and
// SQLite both write in multiple steps.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	const debounceDelay = 100 * time.Millisecond

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.broadcast("changed")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.Log.Warn("file watcher error", "error", err)
		}
	}
}

// handleSSE streams change events to the client until it disconnects.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
		close(clientChan)
	}()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients, dropping it for
// clients whose buffer is full.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
		}
	}
}

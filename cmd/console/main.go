package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sakan/console/internal/app"
	"sakan/console/internal/config"
	"sakan/console/internal/credstore"
	"sakan/console/internal/query"
	"sakan/console/internal/session"
	"sakan/console/internal/upstream"
)

// tokenSource breaks the construction cycle between the upstream client and
// the session manager: the client is built first against this placeholder,
// the manager is bound afterwards.
type tokenSource struct {
	manager *session.Manager
}

func (t *tokenSource) Token() string {
	if t.manager == nil {
		return ""
	}
	return t.manager.Token()
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: .env not loaded: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	store, err := credstore.NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer store.Close()

	tokens := &tokenSource{}
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, tokens)
	manager := session.NewManager(store, client)
	tokens.manager = manager

	// Restore before the listener opens, so no request ever races the
	// persisted session.
	manager.Restore(ctx)
	if manager.IsAuthenticated() {
		log.Printf("Restored persisted session")
	}

	queries := query.New(client, store.Client(), cfg.CacheTTL)

	service := app.NewService(manager, queries, store)
	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Sakan console listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

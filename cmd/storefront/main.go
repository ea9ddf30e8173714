// cmd/storefront/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storefront/internal/platform/di"
)

func main() {
	port := envOr("PORT", "8080")
	apiBase := envOr("API_BASE", "http://localhost:3000")
	storeDir := strings.TrimSpace(os.Getenv("STORE_DIR"))

	c, err := di.New(di.Config{
		APIBase:  apiBase,
		StoreDir: storeDir,
	})
	if err != nil {
		log.Fatalf("[boot] container init failed: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("[boot] store close: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[boot] storefront listening port=%s apiBase=%s storeDir=%q", port, apiBase, storeDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[boot] listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[boot] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[boot] shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"sustainability_dashboard/internal/api"
	"sustainability_dashboard/internal/config"
	"sustainability_dashboard/internal/dashboard"
	"sustainability_dashboard/internal/ingest"
	"sustainability_dashboard/internal/store"
	"sustainability_dashboard/internal/ws"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "listen address")
	dataDir := flag.String("data-dir", cfg.DataDir, "directory containing the studer, enphase and weather exports")
	frontendDir := flag.String("frontend-dir", cfg.FrontendDir, "directory containing frontend build")
	flag.Parse()

	if *dataDir != cfg.DataDir {
		cfg.SetDataDir(*dataDir)
	}

	sources := ingest.SourcesFromConfig(cfg)
	sets, err := sources.Load()
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	dataStore := store.New()
	dataStore.Replace(sets)
	for _, name := range dataStore.Names() {
		log.Printf("  %s: %d rows", name, dataStore.RowCount(name))
	}
	if tr, ok := dataStore.GlobalTimeRange(); ok {
		log.Printf("Data loaded: %s to %s (%d days)", tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02"), tr.Days())
	}

	svc, err := dashboard.NewService(dataStore, cfg, sources.Load)
	if err != nil {
		log.Fatalf("Failed to create dashboard service: %v", err)
	}

	// WebSocket hub; reloads are pushed to every session
	hub := ws.NewHub()
	svc.SetNotifier(ws.NewBridge(hub))

	router := api.NewRouter(svc, ws.NewHandler(hub, svc))

	// Serve frontend static files
	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(*frontendDir)))
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           handlers.LoggingHandler(os.Stdout, cors(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/trajectory-engine/config"
	"github.com/theoremus-urban-solutions/trajectory-engine/gtfsrt"
	"github.com/theoremus-urban-solutions/trajectory-engine/trajectory"
)

// State is the engine state the handlers serve from. Collection is the
// base collection built from the configured AIS export; Live is non-nil
// when a GTFS-RT vehicle positions feed is configured and accumulating.
type State struct {
	Collection *trajectory.Collection
	Live       *gtfsrt.Accumulator
	Cfg        config.AppConfig
}

var (
	server *http.Server
	state  *State
)

// StartServer starts the HTTP API on the configured port.
func StartServer(st *State) {
	state = st

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/trajectories.geojson", handleTrajectoriesGeoJSON)
	mux.HandleFunc("/api/trips.geojson", handleTripsGeoJSON)
	mux.HandleFunc("/api/start-locations.json", handleStartLocationsJSON)
	mux.HandleFunc("/api/start-locations.csv", handleStartLocationsCSV)
	mux.HandleFunc("/api/live/trajectories.geojson", handleLiveTrajectoriesGeoJSON)

	addr := fmt.Sprintf(":%d", st.Cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM and drains the server.
func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}

package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	addr := flag.String("addr", "", "HTTP listen address (overrides PORT)")
	clientDir := flag.String("client", "", "Path to client directory (default: ../client)")
	dbPath := flag.String("db", "arena.db", "Path to SQLite telemetry database")
	flag.Parse()

	listen := *addr
	if listen == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		listen = ":" + port
	}

	if *clientDir == "" {
		exe, _ := os.Executable()
		*clientDir = filepath.Join(filepath.Dir(exe), "..", "client")
		// Fallback for development
		if _, err := os.Stat(*clientDir); os.IsNotExist(err) {
			*clientDir = "../client"
		}
	}

	db, err := OpenDB(*dbPath)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		db = nil
	}
	tel := NewTelemetry(db)

	registry := NewRegistry(DefaultRoomConfig(), tel)

	hub := NewHub(registry, tel)
	go hub.Run()

	scheduler := NewScheduler(registry)
	go scheduler.Run()

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: listen, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", listen)
		log.Printf("Serving client files from %s", *clientDir)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	scheduler.Stop()
	tel.Stop()
	if db != nil {
		db.Close()
	}
	server.Close()
}

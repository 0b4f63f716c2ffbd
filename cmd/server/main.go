package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/config"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	// .env is optional; real env vars win over the file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config file not loaded, using defaults: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("shutting down...")
		srv.Shutdown()
		os.Exit(0)
	}()

	log.Println("🎲 osadníci server starting...")
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

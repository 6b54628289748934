package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance-bot-backend/config"
	"attendance-bot-backend/internal/api"
	"attendance-bot-backend/internal/bot"
	"attendance-bot-backend/internal/calendar"
	"attendance-bot-backend/internal/db"
	"attendance-bot-backend/internal/diff"
	"attendance-bot-backend/internal/notify"
	"attendance-bot-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "attendance-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Calendar.ID == "" {
		logger.Fatalf("calendar.id must be configured")
	}

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logger.Fatalf("failed to load timezone %q: %v", cfg.Calendar.Timezone, err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("state store initialized")

	calStore, err := calendar.NewGoogleStore(ctx, cfg.Calendar.ID, cfg.Calendar.CredentialsFile, cfg.Calendar.Timezone)
	if err != nil {
		logger.Fatalf("failed to initialize calendar client: %v", err)
	}
	logger.Println("calendar client initialized")

	sender := notify.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.FromName)

	botSvc := bot.NewService(calStore, loc)

	diffSvc := diff.NewService(cfg, calStore, appStore, sender, loc)
	go func() {
		if err := diffSvc.Run(ctx); err != nil {
			logger.Printf("report job exited: %v", err)
		}
	}()

	handler := api.NewHandler(botSvc, calStore, loc)
	router := api.NewRouter(&cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

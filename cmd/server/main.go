package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/app/service"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/repository"
	"fintrack/internal/platform/config"
	"fintrack/internal/platform/database"
	"fintrack/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Database connected.")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}
	fmt.Println("Migrations applied.")

	// 3. Initialize Redis
	rdb, err := queue.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer rdb.Close()
	fmt.Println("Redis connected.")

	// 4. Auth core
	codec := security.NewCodec(cfg.JWTKey, cfg.JWTExp)
	verifier := security.NewPasswordVerifier(cfg.PasswordScheme)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	investmentRepo := repository.NewPgInvestmentRepository(db)
	expenseRepo := repository.NewPgExpenseRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, codec, verifier, cfg.Admin, rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	sessionService := service.NewSessionService(userRepo, codec, cfg.Admin)
	userService := service.NewUserService(userRepo, verifier)
	investmentService := service.NewInvestmentService(investmentRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	chatService := service.NewChatService(nil, rdb, cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, cfg.ChatCacheTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, sessionService, userService, investmentService, expenseService, chatService, cfg.StaticDir)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}

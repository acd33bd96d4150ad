// Main entry point of the Templario GraphQL API. It loads configuration,
// connects to PostgreSQL, runs migrations, wires the feature services into
// the GraphQL schema and serves it over chi with graceful shutdown.
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/templario-go/auth"
	"github.com/user/templario-go/config"
	"github.com/user/templario-go/db"
	"github.com/user/templario-go/graph"
	"github.com/user/templario-go/profiles"
	"github.com/user/templario-go/templates"
	"github.com/user/templario-go/users"
	"github.com/user/templario-go/validation"
)

func main() {
	// In development the environment comes from a .env file; in production
	// the variables are set directly, so a missing file is only a warning.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: services get the pool, the resolver set
	// gets the services, the schema gets the resolvers.
	tokenManager := auth.NewTokenManager(cfg.Auth)
	userService := users.NewService(pool)
	profileService := profiles.NewService(pool)
	templateService := templates.NewService(pool)

	resolvers := graph.NewResolvers(userService, profileService, templateService, tokenManager)
	schema, err := graph.NewSchema(resolvers, tokenManager, validation.NewSchemaSet())
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}
	graphqlHandler := graph.NewHandler(schema, userService)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The token middleware never rejects: it only decodes the bearer
	// credential so the per-field resolver chains can decide.
	r.Use(auth.ExtractTokenMiddleware(tokenManager))

	r.Post("/graphql", graphqlHandler.ServeHTTP)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/stackmart/catalog/internal/auth"
	"github.com/stackmart/catalog/internal/catalog"
	"github.com/stackmart/catalog/internal/config"
	"github.com/stackmart/catalog/internal/db"
	"github.com/stackmart/catalog/internal/export"
	"github.com/stackmart/catalog/internal/middleware"
	"github.com/stackmart/catalog/internal/repository"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	productRepo := repository.NewProductRepository(conn.Pool)
	categoryRepo := repository.NewCategoryRepository(conn.Pool)

	catalogService := catalog.NewService(productRepo)
	exportService := export.NewService(catalogService, export.WithPageSize(cfg.Server.ExportPageSize))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	withCommon := func(h http.Handler) http.Handler {
		return corsHandler.Handler(
			middleware.LoggingMiddleware(
				auth.RoleMiddleware(
					middleware.DataLoaderMiddleware(categoryRepo)(h))))
	}

	catalogHandler := catalog.NewHTTPHandler(catalogService)
	http.Handle("/products", withCommon(catalogHandler))
	http.Handle("/products/", withCommon(catalogHandler))
	http.Handle("/admin/products", withCommon(catalogHandler))
	http.Handle("/admin/products/export", withCommon(auth.RequireAdmin(export.NewHTTPHandler(exportService))))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting catalog server on %s", cfg.Server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lifeos/internal/config"
	"lifeos/internal/container"
	"lifeos/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := container.OpenDatabase(ctx, appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig, nil)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	dashboard, err := ui.NewApp(appContainer.UIServices(), appContainer.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize dashboard: %v", err)
	}

	servers := []*http.Server{
		{Addr: ":" + appConfig.Server.Port, Handler: appContainer.NewAPIServer().Handler()},
		{Addr: ":" + appConfig.Server.UIPort, Handler: dashboard.Handler()},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Printf("🚀 Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if appConfig.Digest.Enabled {
		if err := appContainer.Digests.Start(gctx); err != nil {
			log.Fatalf("Failed to start digest scheduler: %v", err)
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Shutdown of %s failed: %v", srv.Addr, err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}
	log.Println("Stopped")
}

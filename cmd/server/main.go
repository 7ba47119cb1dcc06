package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nekogravitycat/appointment-booking-backend/internal/app"
	"github.com/nekogravitycat/appointment-booking-backend/internal/config"
	"github.com/nekogravitycat/appointment-booking-backend/internal/db"
	"github.com/nekogravitycat/appointment-booking-backend/internal/notification"
	"github.com/nekogravitycat/appointment-booking-backend/internal/schedule"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Daily slot template
	loc, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		log.Fatalf("invalid schedule timezone %q: %v", cfg.ScheduleTimezone, err)
	}
	template, err := schedule.New(cfg.ScheduleDayStart, cfg.ScheduleDayEnd, cfg.ScheduleSlotStep, loc)
	if err != nil {
		log.Fatalf("invalid slot template: %v", err)
	}

	// Notification broker (optional)
	var notifier notification.Notifier = notification.NopNotifier{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to amqp broker: %v", err)
		}
		defer conn.Close()

		publisher, err := notification.NewAMQPPublisher(conn, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("failed to set up amqp publisher: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
	} else {
		log.Println("AMQP_URL not set, booking notifications disabled")
	}

	// Init app container
	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		Template:     template,
		Notifier:     notifier,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}

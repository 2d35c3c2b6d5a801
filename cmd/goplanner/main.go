package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goplanner/goplanner/internal/api"
	"github.com/goplanner/goplanner/internal/config"
	"github.com/goplanner/goplanner/internal/db"
	"github.com/goplanner/goplanner/internal/mail"
	"github.com/goplanner/goplanner/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var dispatcher api.NotificationDispatcher
	if cfg.SMTPHost != "" {
		dispatcher = mail.NewSMTPDispatcher(mail.SMTPConfig{
			Host:         cfg.SMTPHost,
			Port:         cfg.SMTPPort,
			Username:     cfg.SMTPUsername,
			Password:     cfg.SMTPPassword,
			From:         cfg.MailFrom,
			SupportInbox: cfg.SupportInbox,
		})
	} else {
		log.Printf("SMTP_HOST not set, logging emails instead of sending")
		dispatcher = mail.NewLogDispatcher()
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, collector)
	}

	handler := api.NewHandler(database, api.HandlerOptions{
		SecretKey:           cfg.SecretKey,
		TokenTTL:            cfg.TokenTTL,
		OTPTTL:              cfg.OTPTTL,
		Location:            location,
		Dispatcher:          dispatcher,
		ItineraryServiceURL: cfg.ItineraryServiceURL,
		Metrics:             collector,
		AuthRatePerMinute:   cfg.AuthRatePerMinute,
		AuthRateBurst:       cfg.AuthRateBurst,
	})

	app := fiber.New(fiber.Config{
		AppName:               "GoPlanner",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("GoPlanner listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func serveMetrics(addr string, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	log.Printf("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

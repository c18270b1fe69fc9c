package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souravdey/hospiagent-notify/cmd/mainconfig"
	"github.com/souravdey/hospiagent-notify/internal/api/router"
	appconfig "github.com/souravdey/hospiagent-notify/internal/config"
	"github.com/souravdey/hospiagent-notify/internal/insights"
	"github.com/souravdey/hospiagent-notify/internal/notification"
	"github.com/souravdey/hospiagent-notify/internal/notify"
	"github.com/souravdey/hospiagent-notify/internal/observability/metrics"
	"github.com/souravdey/hospiagent-notify/internal/reminder"
	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

func main() {
	// Load .env in development; the file is absent in production images.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting hospiagent-notify API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics
	registry := prometheus.NewRegistry()
	reminderMetrics := metrics.NewReminderMetrics(registry)
	notificationMetrics := metrics.NewNotificationMetrics(registry)

	// Email senders
	sender := buildEmailSender(ctx, cfg, logger)
	mailer := notify.NewAppointmentMailer(sender, logger)

	// Reminder scheduling
	jobs := reminder.NewTimerRegistry(logger)
	scheduler := reminder.NewScheduler(mailer, jobs, nil, reminderMetrics, logger)

	// Notification fan-out (requires the database)
	var notificationHandler *notification.Handler
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := notification.NewPostgresRepository(pool)
		svc := notification.NewService(store,
			buildWhatsApp(cfg, logger),
			buildSMS(cfg, logger),
			buildEmailAPI(cfg, logger),
			notificationMetrics, logger)
		notificationHandler = notification.NewHandler(svc, logger)
	} else {
		logger.Warn("DATABASE_URL not set; notification fan-out disabled")
	}

	// Insight generation (optional)
	var insightsHandler *insights.Handler
	if cfg.GeminiAPIKey != "" {
		llm, err := insights.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = llm.Close() }()
		insightsHandler = insights.NewHandler(insights.NewGenerator(llm, logger), logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set; insight generation disabled")
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		ReminderHandler:     reminder.NewHandler(scheduler, logger),
		NotificationHandler: notificationHandler,
		InsightsHandler:     insightsHandler,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  float64(cfg.RateLimitPerSec),
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout. Pending reminder jobs are in-process
	// timers and do not survive the restart.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender picks the provider from EMAIL_PROVIDER: "ses", "sendgrid",
// or "failover" (SES primary, SendGrid secondary). A stub sender is used when
// nothing is configured so reminder scheduling still works in development.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	var ses, sendgrid notify.EmailSender

	if awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg); err != nil {
		logger.Error("failed to load AWS config", "error", err)
	} else if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
		FromEmail: cfg.SESFromEmail,
		FromName:  cfg.SESFromName,
	}, logger); s != nil {
		ses = s
	}

	if s := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); s != nil {
		sendgrid = s
	}

	switch cfg.EmailProvider {
	case "ses":
		if ses != nil {
			return ses
		}
	case "sendgrid":
		if sendgrid != nil {
			return sendgrid
		}
	case "failover":
		if ses != nil && sendgrid != nil {
			return notify.NewFailoverSender(ses, "ses", sendgrid, "sendgrid", logger)
		}
		if ses != nil {
			return ses
		}
		if sendgrid != nil {
			return sendgrid
		}
	}

	logger.Warn("no email provider configured; appointment emails will be stubbed", "provider", cfg.EmailProvider)
	return notify.NewStubEmailSender(logger)
}

func buildWhatsApp(cfg *appconfig.Config, logger *logging.Logger) notification.ChatSender {
	if cfg.WhatsAppAPIURL == "" {
		return nil
	}
	client, err := notification.NewWhatsAppClient(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIKey, cfg.ChannelTimeout, logger)
	if err != nil {
		logger.Error("failed to create whatsapp client", "error", err)
		return nil
	}
	return client
}

func buildSMS(cfg *appconfig.Config, logger *logging.Logger) notification.TextSender {
	if cfg.SMSAPIURL == "" {
		return nil
	}
	client, err := notification.NewSMSClient(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.ChannelTimeout, logger)
	if err != nil {
		logger.Error("failed to create sms client", "error", err)
		return nil
	}
	return client
}

func buildEmailAPI(cfg *appconfig.Config, logger *logging.Logger) notification.MailSender {
	if cfg.EmailAPIURL == "" {
		return nil
	}
	client, err := notification.NewEmailAPIClient(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.ChannelTimeout, logger)
	if err != nil {
		logger.Error("failed to create email api client", "error", err)
		return nil
	}
	return client
}

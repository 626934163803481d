package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/upfh/frontdesk/internal/api/router"
	"github.com/upfh/frontdesk/internal/booking"
	appconfig "github.com/upfh/frontdesk/internal/config"
	"github.com/upfh/frontdesk/internal/conversation"
	"github.com/upfh/frontdesk/internal/fees"
	"github.com/upfh/frontdesk/internal/gcal"
	"github.com/upfh/frontdesk/internal/notify"
	"github.com/upfh/frontdesk/internal/observability/metrics"
	"github.com/upfh/frontdesk/internal/schedule"
	"github.com/upfh/frontdesk/internal/sitesearch"
	"github.com/upfh/frontdesk/internal/webchat"
	"github.com/upfh/frontdesk/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting frontdesk API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	location, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Error("invalid clinic timezone", "error", err, "timezone", cfg.ClinicTimezone)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calendar, err := gcal.NewClient(ctx, gcal.Config{
		CredentialsFile: cfg.GoogleCalendarCredentials,
		OAuthTokenPath:  cfg.GoogleOAuthTokenPath,
		Timezone:        cfg.ClinicTimezone,
	}, logger.WithComponent("gcal"))
	if err != nil {
		logger.Error("failed to create calendar client", "error", err)
		os.Exit(1)
	}

	llm, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer llm.Close()

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Warn("sendgrid not configured, using stub email sender")
		sender = notify.NewStubEmailSender(logger)
	}

	availability := schedule.NewCalculator(calendar, cfg.GoogleCalendarID, schedule.CalculatorConfig{
		Location:       location,
		WorkDayStart:   cfg.WorkDayStart,
		WorkDayEnd:     cfg.WorkDayEnd,
		ScanStep:       time.Duration(cfg.ScanStepMinutes) * time.Minute,
		Granularity:    time.Duration(cfg.GranularityMinutes) * time.Minute,
		MaxSlotsPerDay: cfg.MaxSlotsPerDay,
		MaxRangeDays:   cfg.MaxRangeDays,
	}, logger)

	sessions := conversation.NewSessionStore(cfg.SessionTTL)
	sessions.StartSweeper(ctx, cfg.SessionSweepInterval)

	agentMetrics := metrics.NewAgentMetrics(nil)

	dispatcher := conversation.NewDispatcher(conversation.Deps{
		LLM:          llm,
		Sessions:     sessions,
		Availability: availability,
		Booking:      booking.NewCoordinator(calendar, cfg.GoogleCalendarID, location, logger),
		Fees:         fees.NewEstimator(cfg.ProcedureMatchThreshold),
		Search:       sitesearch.Disabled{},
		Notify:       notify.NewService(sender, cfg.StaffNotifyEmail, logger.WithComponent("notify")),
		Metrics:      agentMetrics,
		Logger:       logger.WithComponent("conversation"),
	})

	chatHandler := webchat.NewHandler(dispatcher, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSOrigins,
		ChatRateLimit:      cfg.ChatRateLimit,
		ChatRateBurst:      cfg.ChatRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model rounds can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

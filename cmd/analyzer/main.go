package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/your-org/snapcal/internal/schedule"
	"github.com/your-org/snapcal/pkg/calendar"
	"github.com/your-org/snapcal/pkg/config"
	"github.com/your-org/snapcal/pkg/kafka"
	"github.com/your-org/snapcal/pkg/logger"
	"github.com/your-org/snapcal/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logr, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	traceShutdown, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		Attributes:  parseResourceAttributes(cfg.Tracing.ResourceAttr),
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		logr.Fatal("init tracing", zap.Error(err))
	}
	defer traceShutdown(context.Background()) //nolint:errcheck

	location, err := time.LoadLocation(cfg.Google.Timezone)
	if err != nil {
		logr.Fatal("load reference timezone", zap.String("timezone", cfg.Google.Timezone), zap.Error(err))
	}

	sink, err := calendar.NewGoogleClient(ctx, calendar.GoogleConfig{
		CredentialsJSON: []byte(cfg.Google.CredentialsJSON),
		CalendarID:      cfg.Google.CalendarID,
	}, logr)
	if err != nil {
		logr.Fatal("init calendar client", zap.Error(err))
	}

	extractor := schedule.NewAzureExtractor(schedule.AzureExtractorConfig{
		Endpoint:   cfg.Azure.Endpoint,
		APIKey:     cfg.Azure.APIKey,
		Deployment: cfg.Azure.Deployment,
		APIVersion: cfg.Azure.APIVersion,
		MaxTokens:  cfg.Azure.MaxTokens,
	})

	var announcer schedule.Announcer
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.CreatedTopic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		})
		announcer = producer
	}

	service := schedule.NewService(schedule.Params{
		Extractor:       extractor,
		Calendar:        sink,
		Announcer:       announcer,
		Location:        location,
		ExtractTimeout:  cfg.Azure.Timeout,
		CalendarTimeout: cfg.Google.Timeout,
		Logger:          logr,
	})

	handler := schedule.NewHTTPHandler(service, logr, cfg.Upload.MaxSizeBytes, cfg.Upload.MultipartMemBytes)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("http server shutdown failed", zap.Error(err))
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				logr.Error("kafka producer close failed", zap.Error(err))
			}
		}
	}()

	logr.Info("analyzer service starting",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("calendar_id", cfg.Google.CalendarID),
		zap.String("timezone", cfg.Google.Timezone),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Fatal("http server failed", zap.Error(err))
	}
}

func parseResourceAttributes(raw string) map[string]string {
	attrs := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" || !strings.Contains(pair, "=") {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		attrs[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return attrs
}

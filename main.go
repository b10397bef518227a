package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warranty-service/internal/config"
	"warranty-service/internal/consumer"
	"warranty-service/internal/domain"
	"warranty-service/internal/handler"
	"warranty-service/internal/producer"
	"warranty-service/internal/repository"
	"warranty-service/internal/sender"
	"warranty-service/internal/service"
	"warranty-service/internal/session"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	log.Info("Starting warranty service...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store     service.RecordStore
		emailRepo service.EmailRepository = repository.LogEmailRepository{}
	)
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := repository.Migrate(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
			log.WithError(&domain.StoreUnavailableError{Err: err}).Fatal("Could not prepare record store")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(&domain.StoreUnavailableError{Err: err}).Fatal("Could not connect to database")
		}
		defer db.Close()
		pg := repository.NewPostgresRecordStore(db)
		if err := pg.Ping(ctx); err != nil {
			log.WithError(&domain.StoreUnavailableError{Err: err}).Fatal("Record store unreachable")
		}
		store = pg
		emailRepo = repository.NewPostgresEmailRepository(db)
	case config.StoreMemory:
		log.Warn("Using in-memory record store; registrations are lost on restart")
		store = repository.NewMemoryRecordStore()
	}

	var emailSender sender.EmailSender
	if cfg.SMTPConfigured() {
		emailSender = sender.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.AuditBCC)
	} else {
		log.Warn("SMTP environment variables are not set. Confirmation emails will fail and be logged.")
		emailSender = unconfiguredSender{}
	}
	notificationService := service.NewNotificationService(emailSender, emailRepo)

	var notifier service.Notifier = notificationService
	if cfg.NotifyMode == config.NotifyKafka {
		p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": cfg.KafkaServers})
		if err != nil {
			log.WithError(err).Fatal("Failed to create Kafka producer")
		}
		publisher := producer.NewKafkaPublisher(p, cfg.KafkaTopic)
		defer publisher.Close(5000)
		notifier = publisher

		kc, err := consumer.NewKafkaConsumer(cfg.KafkaServers, cfg.KafkaGroupID, cfg.KafkaTopic, handler.NewRegistrationHandler(notificationService))
		if err != nil {
			log.WithError(err).Fatal("Failed to start Kafka consumer")
		}
		defer kc.Close()
		go func() {
			if err := kc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("Kafka consumer stopped")
			}
		}()
	}
	dispatcher := service.NewAsyncDispatcher(notifier, cfg.NotifyTimeout)

	var sessions session.Store
	switch cfg.SessionBackend {
	case config.SessionRedis:
		client, err := session.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to Redis")
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	warranty := service.NewWarrantyService(store, dispatcher, service.Catalog{
		Shops:     cfg.Shops,
		Products:  cfg.Products,
		Passcodes: cfg.ShopPasscodes,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(handler.NewHTTPHandler(warranty, sessions)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}
	dispatcher.Wait()
}

type unconfiguredSender struct{}

func (unconfiguredSender) SendEmail(ctx context.Context, to, subject, body string) error {
	return errors.New("smtp is not configured")
}

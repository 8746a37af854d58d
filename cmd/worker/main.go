package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"botbackend/clients/discord"
	"botbackend/clients/natsqueue"
	"botbackend/clients/pinpoint"
	"botbackend/clients/secretsmanager"
	"botbackend/config"
	"botbackend/db"
	"botbackend/services/contacts"
	"botbackend/services/notifications"
	"botbackend/services/points"
	"botbackend/usecases/worker"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.NotificationsConfig.IsConfigured() {
		return fmt.Errorf("PINPOINT_APP_ID and ORIGINATION_NUMBER must be set for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	secretsClient := secretsmanager.NewSecretsManagerClient(awsCfg)
	bundle, err := secretsClient.GetSecretBundle(ctx, cfg.BotSecretName)
	if err != nil {
		return err
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	pointsRepo := db.NewPostgresPointTransactionsRepository(dbConn, cfg.DatabaseSchema)
	contactsRepo := db.NewPostgresContactsRepository(dbConn, cfg.DatabaseSchema)

	pointsService := points.NewPointsService(pointsRepo)
	contactsService := contacts.NewContactsService(contactsRepo)

	notifierClient := pinpoint.NewPinpointNotifierClient(awsCfg, cfg.NotificationsConfig.PinpointApplicationID)
	notificationsService := notifications.NewNotificationsService(notifierClient)

	discordClient, err := discord.NewDiscordClient(bundle.BotToken)
	if err != nil {
		return err
	}

	queueClient, err := natsqueue.NewNATSQueueClient(ctx, natsqueue.Config{
		URL:          cfg.NATSConfig.URL,
		StreamName:   cfg.NATSConfig.StreamName,
		Subject:      cfg.NATSConfig.Subject,
		ConsumerName: cfg.NATSConfig.ConsumerName,
	})
	if err != nil {
		return err
	}
	defer queueClient.Close()

	workerUseCase := worker.NewWorkerUseCase(
		queueClient,
		discordClient,
		pointsService,
		contactsService,
		notificationsService,
		cfg.NotificationsConfig.OriginationNumber,
		cfg.WorkerBatchSize,
	)

	log.Printf("✅ Command worker started, consuming %s", cfg.NATSConfig.Subject)

	// The fetch inside ProcessBatch blocks briefly when the queue is empty,
	// so this loop is naturally paced
	for {
		if ctx.Err() != nil {
			break
		}
		if err := workerUseCase.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("❌ Failed to process batch: %v", err)
			// A fetch error returns immediately, unlike an empty fetch,
			// so pause before retrying instead of spinning on a dead queue
			select {
			case <-ctx.Done():
			case <-time.After(2 * time.Second):
			}
		}
	}

	log.Printf("🛑 Shutdown signal received, worker stopping")
	return nil
}

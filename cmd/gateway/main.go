package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gorilla/mux"

	"botbackend/clients/natsqueue"
	"botbackend/clients/secretsmanager"
	"botbackend/config"
	"botbackend/handlers"
	"botbackend/middleware"
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

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	// The secret bundle is fetched once per process start; the handler only
	// ever sees the decoded verification key
	secretsClient := secretsmanager.NewSecretsManagerClient(awsCfg)
	bundle, err := secretsClient.GetSecretBundle(ctx, cfg.BotSecretName)
	if err != nil {
		return err
	}

	verificationKey, err := bundle.VerificationKey()
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

	interactionsHandler := handlers.NewInteractionsHandler(queueClient, verificationKey)

	router := mux.NewRouter()
	interactionsHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	recoveryMiddleware := middleware.NewRecoveryMiddleware()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           recoveryMiddleware.HTTPMiddleware(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Printf("✅ Server shut down gracefully")
	return nil
}

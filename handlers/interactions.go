package handlers

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"botbackend/clients"
	"botbackend/interactions"
	"botbackend/models"
)

const (
	signatureHeader = "x-signature-ed25519"
	timestampHeader = "x-signature-timestamp"
)

// ackMessage is the interim reply sent while the worker handles the command
const ackMessage = "Working on it..."

// InteractionsHandler is the synchronous front door: verify, classify,
// enqueue, acknowledge. It never waits on worker outcomes.
type InteractionsHandler struct {
	queueClient     clients.QueueClient
	verificationKey ed25519.PublicKey
}

func NewInteractionsHandler(queueClient clients.QueueClient, verificationKey ed25519.PublicKey) *InteractionsHandler {
	return &InteractionsHandler{
		queueClient:     queueClient,
		verificationKey: verificationKey,
	}
}

// SetupEndpoints registers the webhook route on the router
func (h *InteractionsHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/discord/interactions", h.HandleInteraction).Methods("POST")
}

func (h *InteractionsHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	log.Printf("⚡ Interaction received from %s", r.RemoteAddr)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		interactions.ErrorResponse("failed to read request body").Write(w)
		return
	}

	signature := r.Header.Get(signatureHeader)
	timestamp := r.Header.Get(timestampHeader)
	if err := interactions.VerifySignature(timestamp, body, signature, h.verificationKey); err != nil {
		log.Printf("❌ Signature verification failed: %v", err)
		interactions.UnauthorizedResponse(fmt.Sprintf("invalid request signature: %v", err)).Write(w)
		return
	}

	log.Printf("✅ Signature verification successful")

	envelope, err := interactions.Classify(body)
	if err != nil {
		log.Printf("❌ Failed to classify interaction: %v", err)
		interactions.ErrorResponse(fmt.Sprintf("failed to classify interaction: %v", err)).Write(w)
		return
	}

	if envelope.Kind == models.InteractionKindPing {
		log.Printf("🏓 Answering liveness probe")
		interactions.PongResponse().Write(w)
		return
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("❌ Failed to serialize envelope: %v", err)
		interactions.ErrorResponse(fmt.Sprintf("failed to serialize envelope: %v", err)).Write(w)
		return
	}

	// Fire and forget: the gateway's job ends at the enqueue
	if err := h.queueClient.Publish(r.Context(), payload); err != nil {
		log.Printf("❌ Failed to enqueue command %s: %v", envelope.Command, err)
		interactions.ErrorResponse(fmt.Sprintf("failed to enqueue command: %v", err)).Write(w)
		return
	}

	log.Printf("✅ Enqueued command %s from %s", envelope.Command, envelope.CommandIssuer)
	interactions.AckResponse(ackMessage).Write(w)
}

package clients

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// QueuedMessage is one delivery of a queued envelope. Ack removes the
// message from the queue; an unacked message is redelivered by the queue's
// native at-least-once semantics.
type QueuedMessage interface {
	Body() []byte
	Ack() error
}

// QueueClient defines the interface for the durable command queue between
// the gateway and the worker
type QueueClient interface {
	Publish(ctx context.Context, body []byte) error
	FetchBatch(ctx context.Context, maxMessages int) ([]QueuedMessage, error)
}

// DiscordClient defines the interface for outbound Discord REST operations
type DiscordClient interface {
	// GetUserTag resolves a user ID to its canonical "username#discriminator" form
	GetUserTag(ctx context.Context, userID string) (string, error)
	SendChannelMessage(ctx context.Context, channelID, content string) error
}

// NotifierClient defines the interface for the SMS/voice alert fan-out
type NotifierClient interface {
	SendTextMessage(ctx context.Context, originationNumber, destinationNumber, message string) error
	SendVoiceMessage(ctx context.Context, originationNumber, destinationNumber, ssmlMessage string) error
}

// SecretBundle holds the bot credentials fetched from the secret store
type SecretBundle struct {
	ApplicationID string `json:"application_id"`
	BotToken      string `json:"bot_token"`
	PublicKey     string `json:"public_key"`
}

// VerificationKey decodes the bundle's hex-encoded Ed25519 public key
func (b *SecretBundle) VerificationKey() (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(b.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode verification key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid verification key length: %d", len(key))
	}
	return ed25519.PublicKey(key), nil
}

// SecretsClient defines the interface for fetching the bot's secret bundle
type SecretsClient interface {
	GetSecretBundle(ctx context.Context, secretName string) (*SecretBundle, error)
}

package interactions

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"botbackend/core"
	"botbackend/models"
)

// Discord interaction types we care about. Type 1 is the liveness probe;
// everything else that reaches the gateway is an application command.
const (
	interactionTypePing = 1
)

// VerifySignature checks that signatureHex is a valid Ed25519 signature by
// publicKey over the exact byte concatenation of timestamp and the raw,
// unparsed request body. Any malformed input or cryptographic mismatch
// returns an error wrapping core.ErrUnauthorized - callers must not
// interpret the body as a command after a failure.
func VerifySignature(timestamp string, body []byte, signatureHex string, publicKey ed25519.PublicKey) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: invalid verification key length %d", core.ErrUnauthorized, len(publicKey))
	}
	if timestamp == "" {
		return fmt.Errorf("%w: missing signature timestamp", core.ErrUnauthorized)
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("%w: malformed signature encoding: %v", core.ErrUnauthorized, err)
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("%w: invalid signature length %d", core.ErrUnauthorized, len(signature))
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, []byte(timestamp)...)
	message = append(message, body...)

	if !ed25519.Verify(publicKey, message, signature) {
		return fmt.Errorf("%w: signature mismatch", core.ErrUnauthorized)
	}

	return nil
}

// discordUser mirrors the user object inside a Discord interaction payload
type discordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
}

// discordInteraction mirrors the subset of the interaction payload the
// gateway needs. Guild interactions carry the user under member.user, DM
// interactions carry it at the top level.
type discordInteraction struct {
	Type int `json:"type"`
	Data struct {
		Name    string                 `json:"name"`
		Options []models.CommandOption `json:"options"`
	} `json:"data"`
	Member *struct {
		User *discordUser `json:"user"`
	} `json:"member"`
	User      *discordUser `json:"user"`
	ChannelID string       `json:"channel_id"`
}

// Classify parses an already-verified interaction body into an envelope.
// Liveness probes yield a ping envelope with no other fields set; everything
// else yields a command envelope.
func Classify(body []byte) (*models.InteractionEnvelope, error) {
	var interaction discordInteraction
	if err := json.Unmarshal(body, &interaction); err != nil {
		return nil, fmt.Errorf("failed to parse interaction body: %w", err)
	}

	if interaction.Type == interactionTypePing {
		return &models.InteractionEnvelope{Kind: models.InteractionKindPing}, nil
	}

	user := interaction.User
	if interaction.Member != nil && interaction.Member.User != nil {
		user = interaction.Member.User
	}
	if user == nil {
		return nil, fmt.Errorf("interaction carries no issuer identity")
	}
	if interaction.Data.Name == "" {
		return nil, fmt.Errorf("interaction carries no command name")
	}
	if interaction.ChannelID == "" {
		return nil, fmt.Errorf("interaction carries no channel ID")
	}

	return &models.InteractionEnvelope{
		Kind:          models.InteractionKindCommand,
		Command:       interaction.Data.Name,
		Options:       interaction.Data.Options,
		CommandIssuer: user.Username + "#" + user.Discriminator,
		IssuerID:      user.ID,
		ChannelID:     interaction.ChannelID,
	}, nil
}

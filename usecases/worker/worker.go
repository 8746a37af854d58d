package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"botbackend/clients"
	"botbackend/core"
	"botbackend/models"
	"botbackend/services"
)

// commandHandler executes one command and returns the reply content for the
// originating channel
type commandHandler func(ctx context.Context, envelope *models.InteractionEnvelope) (string, error)

// WorkerUseCase drains queued command envelopes, routes each to its handler
// and guarantees every delivery is acknowledged exactly once after its
// outcome has been turned into a reply. Handler failures never cross a
// message boundary - one bad message cannot fail the batch.
type WorkerUseCase struct {
	queueClient          clients.QueueClient
	discordClient        clients.DiscordClient
	pointsService        services.PointsService
	contactsService      services.ContactsService
	notificationsService services.NotificationsService
	originationNumber    string
	batchSize            int
	handlers             map[string]commandHandler
}

func NewWorkerUseCase(
	queueClient clients.QueueClient,
	discordClient clients.DiscordClient,
	pointsService services.PointsService,
	contactsService services.ContactsService,
	notificationsService services.NotificationsService,
	originationNumber string,
	batchSize int,
) *WorkerUseCase {
	u := &WorkerUseCase{
		queueClient:          queueClient,
		discordClient:        discordClient,
		pointsService:        pointsService,
		contactsService:      contactsService,
		notificationsService: notificationsService,
		originationNumber:    originationNumber,
		batchSize:            batchSize,
	}

	// Adding a command is a registration here, not a new branch in a dispatch chain
	u.handlers = map[string]commandHandler{
		"add_points":       u.handleAddPoints,
		"remove_points":    u.handleRemovePoints,
		"point_balance":    u.handlePointBalance,
		"update_contact":   u.handleUpdateContact,
		"raid_alert":       u.handleRaidAlert,
		"registered_users": u.handleRegisteredUsers,
	}

	return u
}

// ProcessBatch fetches one batch of deliveries and handles each
// independently. Messages carry no ordering guarantee relative to each
// other.
func (u *WorkerUseCase) ProcessBatch(ctx context.Context) error {
	messages, err := u.queueClient.FetchBatch(ctx, u.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch command batch: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	log.Printf("📨 Processing batch of %d queued commands", len(messages))
	for _, message := range messages {
		u.processMessage(ctx, message)
	}

	return nil
}

// processMessage handles one delivery end to end: decode, dispatch, reply,
// acknowledge. The ack is unconditional once handling has run - only a crash
// before this point leaves the delivery for the queue's native redelivery.
func (u *WorkerUseCase) processMessage(ctx context.Context, message clients.QueuedMessage) {
	defer u.acknowledge(message)

	var envelope models.InteractionEnvelope
	if err := json.Unmarshal(message.Body(), &envelope); err != nil {
		// An undecodable body can never succeed, so replying is impossible
		// and redelivery would be pointless
		log.Printf("❌ Failed to decode queued envelope, dropping: %v", err)
		return
	}

	handler, ok := u.handlers[envelope.Command]
	if !ok {
		// Unknown commands are ignored without a reply; the ack still happens
		log.Printf("⚠️ Ignoring unknown command: %s", envelope.Command)
		return
	}

	log.Printf("⚡ Handling command %s from %s", envelope.Command, envelope.CommandIssuer)

	content, err := u.dispatch(ctx, handler, &envelope)
	if err != nil {
		if core.IsValidationError(err) {
			log.Printf("⚠️ Command %s rejected: %v", envelope.Command, err)
		} else {
			log.Printf("❌ Command %s failed: %v", envelope.Command, err)
		}
		content = userFacingError(err)
	}

	if sendErr := u.discordClient.SendChannelMessage(ctx, envelope.ChannelID, content); sendErr != nil {
		// Best effort - the outcome is final either way and the message
		// must still be acknowledged
		log.Printf("❌ Failed to send reply to channel %s: %v", envelope.ChannelID, sendErr)
	}
}

// dispatch runs one handler and contains its panics. A panic becomes an
// ordinary handler error, so the message still gets a reply and an ack and
// the rest of the batch keeps flowing.
func (u *WorkerUseCase) dispatch(
	ctx context.Context,
	handler commandHandler,
	envelope *models.InteractionEnvelope,
) (content string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("❌ Panic while handling command %s: %v\n%s", envelope.Command, rec, debug.Stack())
			err = fmt.Errorf("failed to handle command %s: internal error", envelope.Command)
		}
	}()

	return handler(ctx, envelope)
}

func (u *WorkerUseCase) acknowledge(message clients.QueuedMessage) {
	if err := message.Ack(); err != nil {
		log.Printf("⚠️ Failed to acknowledge message: %v", err)
	}
}

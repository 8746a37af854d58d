package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"

	"botbackend/clients"
)

// raidAlertMessage is the fixed warning sent on every raid alert. The voice
// channel reads the same text wrapped in SSML.
const raidAlertMessage = "You are being raided! Shield up!"

type NotificationsService struct {
	notifierClient clients.NotifierClient
}

func NewNotificationsService(notifierClient clients.NotifierClient) *NotificationsService {
	return &NotificationsService{notifierClient: notifierClient}
}

// RaidAlert fans the warning out over SMS and voice. Both sends are always
// attempted; a failure on either channel fails the alert as a whole so a
// partial delivery never reports success.
func (s *NotificationsService) RaidAlert(ctx context.Context, originationNumber, destinationNumber string) error {
	log.Printf("📨 Starting raid alert fan-out to %s", destinationNumber)

	smsErr := s.notifierClient.SendTextMessage(ctx, originationNumber, destinationNumber, raidAlertMessage)
	if smsErr != nil {
		log.Printf("❌ Failed to send raid alert SMS: %v", smsErr)
	}

	voiceErr := s.notifierClient.SendVoiceMessage(
		ctx,
		originationNumber,
		destinationNumber,
		"<speak>"+raidAlertMessage+"</speak>",
	)
	if voiceErr != nil {
		log.Printf("❌ Failed to send raid alert voice message: %v", voiceErr)
	}

	if smsErr != nil || voiceErr != nil {
		return fmt.Errorf("failed to send raid alert: %w", errors.Join(smsErr, voiceErr))
	}

	log.Printf("✅ Raid alert delivered over SMS and voice")
	return nil
}

package pinpoint

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	pinpointtypes "github.com/aws/aws-sdk-go-v2/service/pinpoint/types"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
	smsvoicetypes "github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice/types"

	"botbackend/clients"
)

// PinpointNotifierClient implements the clients.NotifierClient interface on
// top of Pinpoint for SMS and Pinpoint SMS Voice for spoken messages
type PinpointNotifierClient struct {
	pinpointClient *pinpoint.Client
	smsVoiceClient *pinpointsmsvoice.Client
	applicationID  string
}

// NewPinpointNotifierClient creates a notifier bound to one Pinpoint application
func NewPinpointNotifierClient(awsConfig aws.Config, applicationID string) clients.NotifierClient {
	return &PinpointNotifierClient{
		pinpointClient: pinpoint.NewFromConfig(awsConfig),
		smsVoiceClient: pinpointsmsvoice.NewFromConfig(awsConfig),
		applicationID:  applicationID,
	}
}

// SendTextMessage sends a transactional SMS to the destination number
func (c *PinpointNotifierClient) SendTextMessage(
	ctx context.Context,
	originationNumber, destinationNumber, message string,
) error {
	_, err := c.pinpointClient.SendMessages(ctx, &pinpoint.SendMessagesInput{
		ApplicationId: aws.String(c.applicationID),
		MessageRequest: &pinpointtypes.MessageRequest{
			Addresses: map[string]pinpointtypes.AddressConfiguration{
				destinationNumber: {ChannelType: pinpointtypes.ChannelTypeSms},
			},
			MessageConfiguration: &pinpointtypes.DirectMessageConfiguration{
				SMSMessage: &pinpointtypes.SMSMessage{
					Body:              aws.String(message),
					MessageType:       pinpointtypes.MessageTypeTransactional,
					OriginationNumber: aws.String(originationNumber),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send SMS message: %w", err)
	}

	return nil
}

// SendVoiceMessage places a call reading the SSML message to the destination number
func (c *PinpointNotifierClient) SendVoiceMessage(
	ctx context.Context,
	originationNumber, destinationNumber, ssmlMessage string,
) error {
	_, err := c.smsVoiceClient.SendVoiceMessage(ctx, &pinpointsmsvoice.SendVoiceMessageInput{
		DestinationPhoneNumber: aws.String(destinationNumber),
		OriginationPhoneNumber: aws.String(originationNumber),
		Content: &smsvoicetypes.VoiceMessageContent{
			SSMLMessage: &smsvoicetypes.SSMLMessageType{
				LanguageCode: aws.String("en-US"),
				VoiceId:      aws.String("Matthew"),
				Text:         aws.String(ssmlMessage),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send voice message: %w", err)
	}

	return nil
}

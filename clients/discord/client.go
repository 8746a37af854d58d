package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"botbackend/clients"
)

// DiscordClient implements the clients.DiscordClient interface on top of a
// discordgo session. Only REST calls are used - the session never opens a
// websocket connection.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client authenticated with the bot token
func NewDiscordClient(botToken string) (clients.DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordClient{session: session}, nil
}

// GetUserTag resolves a user ID to its "username#discriminator" form
func (c *DiscordClient) GetUserTag(ctx context.Context, userID string) (string, error) {
	user, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	return user.Username + "#" + user.Discriminator, nil
}

// SendChannelMessage posts a plain content message to a channel
func (c *DiscordClient) SendChannelMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}

	return nil
}

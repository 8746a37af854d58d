package main

import (
	"context"
	"log"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/bwmarrin/discordgo"

	"botbackend/clients/secretsmanager"
	"botbackend/config"
)

// commandDefinitions is the full slash-command surface of the bot. Running
// this program overwrites the global command set with exactly this list.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "add_points",
		Description: "Award points to another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Who receives the points",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "How many points to award",
				Required:    true,
			},
		},
	},
	{
		Name:        "remove_points",
		Description: "Take points away from another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Who loses the points",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "How many points to take away",
				Required:    true,
			},
		},
	},
	{
		Name:        "point_balance",
		Description: "Show the current point totals for everyone",
	},
	{
		Name:        "update_contact",
		Description: "Register or update your phone number",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "phone_number",
				Description: "Phone number in +12223334455 format",
				Required:    true,
			},
		},
	},
	{
		Name:        "raid_alert",
		Description: "Warn a user over SMS and voice that they are being raided",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Who to warn",
				Required:    true,
			},
		},
	},
	{
		Name:        "registered_users",
		Description: "List everyone with contact info on file",
	},
}

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

	secretsClient := secretsmanager.NewSecretsManagerClient(awsCfg)
	bundle, err := secretsClient.GetSecretBundle(ctx, cfg.BotSecretName)
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + bundle.BotToken)
	if err != nil {
		return err
	}

	registered, err := session.ApplicationCommandBulkOverwrite(bundle.ApplicationID, "", commandDefinitions)
	if err != nil {
		return err
	}

	for _, command := range registered {
		log.Printf("📋 Registered command: %s", command.Name)
	}
	log.Printf("✅ Registered %d commands", len(registered))
	return nil
}

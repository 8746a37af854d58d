package secretsmanager

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"botbackend/clients"
)

// SecretsManagerClient implements the clients.SecretsClient interface
type SecretsManagerClient struct {
	client *secretsmanager.Client
}

// NewSecretsManagerClient creates a new secrets client from AWS configuration
func NewSecretsManagerClient(awsConfig aws.Config) clients.SecretsClient {
	return &SecretsManagerClient{client: secretsmanager.NewFromConfig(awsConfig)}
}

// GetSecretBundle fetches and decodes the bot's secret bundle
func (c *SecretsManagerClient) GetSecretBundle(
	ctx context.Context,
	secretName string,
) (*clients.SecretBundle, error) {
	output, err := c.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch secret %s: %w", secretName, err)
	}
	if output.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", secretName)
	}

	var bundle clients.SecretBundle
	if err := json.Unmarshal([]byte(*output.SecretString), &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode secret %s: %w", secretName, err)
	}

	if bundle.ApplicationID == "" || bundle.BotToken == "" || bundle.PublicKey == "" {
		return nil, fmt.Errorf("secret %s is missing required fields", secretName)
	}

	return &bundle, nil
}

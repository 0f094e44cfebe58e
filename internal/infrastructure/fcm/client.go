package fcm

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging. A client without credentials
// is valid and silently disabled, so alerting stays optional.
type Client struct {
	client *messaging.Client
	log    zerolog.Logger
}

// NewClient initializes Firebase Cloud Messaging from either
// FIREBASE_CREDENTIALS_PATH or an inline FIREBASE_CREDENTIALS_JSON.
func NewClient(ctx context.Context, log zerolog.Logger) (*Client, error) {
	log = log.With().Str("component", "fcm").Logger()

	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credJSON == "" {
			log.Warn().Msg("no firebase credentials found, push notifications disabled")
			return &Client{log: log}, nil
		}

		tmpFile, err := os.CreateTemp("", "firebase-credentials-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		defer tmpFile.Close()

		if _, err := tmpFile.Write([]byte(credJSON)); err != nil {
			return nil, fmt.Errorf("failed to write credentials: %w", err)
		}
		credPath = tmpFile.Name()
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	log.Info().Msg("firebase cloud messaging initialized")
	return &Client{client: client, log: log}, nil
}

// IsEnabled reports whether credentials were configured.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// SendMulticast pushes one notification to every registered token.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("fcm client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "signal_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	resp, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast: %w", err)
	}

	c.log.Debug().
		Int("success", resp.SuccessCount).
		Int("failure", resp.FailureCount).
		Msg("multicast sent")
	return nil
}

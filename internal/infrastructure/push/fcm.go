package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/fastygo/planner/internal/config"
)

// Notification is the content of one push.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Client wraps Firebase Cloud Messaging.
type Client struct {
	messaging *messaging.Client
	logger    *zap.Logger
}

// NewClient creates an FCM client from the configured service account file.
func NewClient(ctx context.Context, cfg config.PushConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	logger.Info("fcm client initialized")
	return &Client{messaging: client, logger: logger}, nil
}

// SendToDevices pushes n to every token and returns the tokens FCM rejected.
func (c *Client) SendToDevices(ctx context.Context, tokens []string, n Notification) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	response, err := c.messaging.SendEachForMulticast(ctx, multicast(tokens, n))
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}
	c.logger.Debug("fcm multicast sent",
		zap.Int("success", response.SuccessCount),
		zap.Int("failure", response.FailureCount),
	)

	var failed []string
	for i, resp := range response.Responses {
		if resp.Success {
			continue
		}
		if messaging.IsUnregistered(resp.Error) || messaging.IsInvalidArgument(resp.Error) {
			failed = append(failed, tokens[i])
		}
		c.logger.Warn("fcm delivery failed", zap.String("token", redact(tokens[i])), zap.Error(resp.Error))
	}
	return failed, nil
}

func multicast(tokens []string, n Notification) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
}

func redact(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12] + "..."
}

package push

import (
	"context"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/workaholic/backend/domain"
)

// FCMSender is the direct-push adapter. Initialization happens once at
// construction from a service-account credential; a sender that failed to
// initialize stays usable but rejects every send with
// ErrChannelNotInitialized before any network activity.
type FCMSender struct {
	client  *messaging.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewFCMSender builds the adapter. A missing or unreadable credential is not
// fatal: the sender is returned not-ready and the caller decides whether the
// scheduler loop starts.
func NewFCMSender(ctx context.Context, credentialsFile string, timeout time.Duration, logger *zap.Logger) *FCMSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FCMSender{timeout: timeout, logger: logger}

	if credentialsFile == "" {
		return s
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		logger.Warn("fcm credential file missing", zap.String("path", credentialsFile), zap.Error(err))
		return s
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		logger.Warn("fcm app init failed", zap.Error(err))
		return s
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Warn("fcm messaging client init failed", zap.Error(err))
		return s
	}

	s.client = client
	logger.Info("fcm channel initialized")
	return s
}

// Ready reports whether the channel initialized. The flag is set once at
// construction and only read afterwards.
func (s *FCMSender) Ready() bool {
	return s != nil && s.client != nil
}

func (s *FCMSender) Send(ctx context.Context, token, title, body string) error {
	if !s.Ready() {
		return domain.ErrChannelNotInitialized
	}
	if token == "" {
		return domain.ErrInvalidPushToken
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.Send(sendCtx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: token,
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "fcm send failed", err)
	}
	return nil
}

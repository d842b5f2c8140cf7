package domain

import "time"

// Channel identifies which delivery path handled a notification attempt.
type Channel string

const (
	// ChannelFCM is provider-routed delivery to a registered device token.
	ChannelFCM Channel = "fcm"
	// ChannelExpo is delivery through the Expo HTTP push gateway.
	ChannelExpo Channel = "expo"
	// ChannelNone marks an attempt that had no destination address at all.
	ChannelNone Channel = "none"
)

// NotificationOutcome is the result of a single dispatch attempt. It is
// recorded for observability only and never written back onto the task.
type NotificationOutcome struct {
	TaskID   string    `json:"task_id,omitempty"`
	Username string    `json:"username"`
	Channel  Channel   `json:"channel"`
	Success  bool      `json:"success"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

package notify

import (
	"context"

	"github.com/workaholic/backend/domain"
)

// Sender delivers one push message to one address. Implementations must
// return a distinguishable error on failure so the dispatcher can decide on
// fallback; they never panic.
type Sender interface {
	Send(ctx context.Context, address, title, body string) error
}

// ReadySender is a Sender whose channel needs one-time credential
// initialization. Ready is checked before a send is attempted, so a missing
// credential fails fast instead of surfacing as a network error.
type ReadySender interface {
	Sender
	Ready() bool
}

// OutcomeJournal records dispatch outcomes durably. Recording only; the
// journal never suppresses repeat sends.
type OutcomeJournal interface {
	Append(outcome domain.NotificationOutcome) error
}

// FailureLog is the plain-text append-only log of failed dispatches.
type FailureLog interface {
	Append(username, taskTitle, detail string) error
}

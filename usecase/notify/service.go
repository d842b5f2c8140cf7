package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
)

// Options tunes the scan windows and the status policy.
type Options struct {
	// WindowOffset is how far ahead of now the background window starts.
	WindowOffset time.Duration
	// WindowWidth is the length of the background window.
	WindowWidth time.Duration
	// PendingOnly restricts the scan to pending tasks. Off reproduces the
	// revision that scanned every status.
	PendingOnly bool
	Location    *time.Location
}

func (o Options) withDefaults() Options {
	if o.WindowOffset <= 0 {
		o.WindowOffset = 30 * time.Minute
	}
	if o.WindowWidth <= 0 {
		o.WindowWidth = time.Minute
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Service owns the due-task scan and the per-task dispatch fallback chain.
type Service struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	direct   Sender
	relay    Sender
	journal  OutcomeJournal
	failures FailureLog
	logger   *zap.Logger
	opts     Options
}

func New(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	direct Sender,
	relay Sender,
	journal OutcomeJournal,
	failures FailureLog,
	logger *zap.Logger,
	opts Options,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:    tasks,
		users:    users,
		direct:   direct,
		relay:    relay,
		journal:  journal,
		failures: failures,
		logger:   logger,
		opts:     opts.withDefaults(),
	}
}

// ScanWindow returns the tasks with an occurrence inside
// [now+offset, now+offset+width).
func (s *Service) ScanWindow(ctx context.Context, now time.Time) ([]DueTask, error) {
	window := Window{
		From: now.Add(s.opts.WindowOffset),
		To:   now.Add(s.opts.WindowOffset + s.opts.WindowWidth),
	}

	candidates, err := s.tasks.ListScheduled(ctx, s.scheduleFilter())
	if err != nil {
		return nil, err
	}

	var due []DueTask
	for _, task := range candidates {
		if at, ok := matchWindow(&task, window, s.opts.Location); ok {
			due = append(due, DueTask{Task: task, At: at})
		}
	}
	return due, nil
}

// ScanLookahead returns the repeat=date tasks due at exactly now+minutes.
func (s *Service) ScanLookahead(ctx context.Context, now time.Time, minutes int) ([]DueTask, error) {
	if minutes <= 0 {
		minutes = 10
	}
	soon := now.Add(time.Duration(minutes) * time.Minute)

	candidates, err := s.tasks.ListScheduled(ctx, s.scheduleFilter())
	if err != nil {
		return nil, err
	}

	var due []DueTask
	for _, task := range candidates {
		if matchLookahead(&task, now, soon, s.opts.Location) {
			due = append(due, DueTask{Task: task, At: soon})
		}
	}
	return due, nil
}

// RunWindowPass is one full scan-and-dispatch cycle for the background loop.
// It returns the number of notification attempts made.
func (s *Service) RunWindowPass(ctx context.Context, now time.Time) (int, error) {
	due, err := s.ScanWindow(ctx, now)
	if err != nil {
		return 0, err
	}

	attempted := 0
	for _, d := range due {
		title := fmt.Sprintf("Upcoming Task: %s", d.Task.Title)
		body := fmt.Sprintf("Your task starts at %s", d.At.In(s.opts.Location).Format("2006-01-02 15:04"))
		if outcome := s.dispatchTask(ctx, d.Task, title, body); outcome != nil && outcome.Channel != domain.ChannelNone {
			attempted++
		}
	}
	return attempted, nil
}

// RunLookaheadPass is the on-demand variant with a caller-supplied lookahead.
func (s *Service) RunLookaheadPass(ctx context.Context, now time.Time, minutes int) (int, error) {
	due, err := s.ScanLookahead(ctx, now, minutes)
	if err != nil {
		return 0, err
	}

	attempted := 0
	for _, d := range due {
		title := "Task Reminder"
		body := fmt.Sprintf("Task %q is due soon!", d.Task.Title)
		if outcome := s.dispatchTask(ctx, d.Task, title, body); outcome != nil && outcome.Channel != domain.ChannelNone {
			attempted++
		}
	}
	return attempted, nil
}

// SendToUser applies the dispatch fallback chain for a request-triggered
// notification. A missing user surfaces as ErrUserNotFound; a user with no
// push address on file surfaces as ErrNoDestination; a final adapter failure
// surfaces as an internal error carrying the adapter detail.
func (s *Service) SendToUser(ctx context.Context, username, title, body string) (*domain.NotificationOutcome, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	outcome := s.deliver(ctx, user, "", title, body)
	s.record(outcome, "")

	switch {
	case outcome.Channel == domain.ChannelNone:
		return &outcome, domain.ErrNoDestination
	case !outcome.Success:
		return &outcome, domain.WrapError(domain.ErrCodeInternal, "notification send failed", fmt.Errorf("%s", outcome.Detail))
	default:
		return &outcome, nil
	}
}

func (s *Service) scheduleFilter() repository.ScheduleFilter {
	filter := repository.ScheduleFilter{}
	if s.opts.PendingOnly {
		filter.Status = domain.StatusPending
	}
	return filter
}

// dispatchTask resolves the owner and delivers. A deleted owner is a silent
// skip, not an error; nil is returned so passes do not count it.
func (s *Service) dispatchTask(ctx context.Context, task domain.Task, title, body string) *domain.NotificationOutcome {
	user, err := s.users.GetByUsername(ctx, task.Username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			s.logger.Debug("task owner missing, skipping",
				zap.String("task_id", task.ID),
				zap.String("username", task.Username))
			return nil
		}
		s.logger.Error("owner lookup failed",
			zap.String("task_id", task.ID),
			zap.Error(err))
		return nil
	}

	outcome := s.deliver(ctx, user, task.ID, title, body)
	s.record(outcome, task.Title)
	return &outcome
}

// deliver runs the fallback chain: direct push first, relay second, at most
// one relay attempt. The direct attempt completes before the relay one is
// considered.
func (s *Service) deliver(ctx context.Context, user *domain.User, taskID, title, body string) domain.NotificationOutcome {
	outcome := domain.NotificationOutcome{
		TaskID:   taskID,
		Username: user.Username,
		At:       time.Now(),
	}

	if !user.HasPushDestination() {
		outcome.Channel = domain.ChannelNone
		outcome.Detail = "no push token found for user"
		return outcome
	}

	if user.DeviceToken != "" && s.direct != nil {
		err := s.direct.Send(ctx, user.DeviceToken, title, body)
		if err == nil {
			outcome.Channel = domain.ChannelFCM
			outcome.Success = true
			return outcome
		}
		s.logger.Warn("fcm send failed, trying expo",
			zap.String("username", user.Username),
			zap.Error(err))
		if user.ExpoPushToken == "" || s.relay == nil {
			outcome.Channel = domain.ChannelFCM
			outcome.Detail = err.Error()
			return outcome
		}
	}

	if user.ExpoPushToken != "" && s.relay != nil {
		outcome.Channel = domain.ChannelExpo
		if err := s.relay.Send(ctx, user.ExpoPushToken, title, body); err != nil {
			outcome.Detail = err.Error()
			return outcome
		}
		outcome.Success = true
		return outcome
	}

	outcome.Channel = domain.ChannelNone
	outcome.Detail = "no push token found for user"
	return outcome
}

func (s *Service) record(outcome domain.NotificationOutcome, taskTitle string) {
	if s.journal != nil {
		if err := s.journal.Append(outcome); err != nil {
			s.logger.Warn("failed to journal notification outcome", zap.Error(err))
		}
	}

	fields := []zap.Field{
		zap.String("username", outcome.Username),
		zap.String("channel", string(outcome.Channel)),
		zap.Bool("success", outcome.Success),
	}
	if outcome.TaskID != "" {
		fields = append(fields, zap.String("task_id", outcome.TaskID))
	}

	if outcome.Success {
		s.logger.Info("notification sent", fields...)
		return
	}

	s.logger.Warn("notification not delivered", append(fields, zap.String("detail", outcome.Detail))...)
	if s.failures != nil && outcome.Channel != domain.ChannelNone {
		if err := s.failures.Append(outcome.Username, taskTitle, outcome.Detail); err != nil {
			s.logger.Warn("failed to append failure log", zap.Error(err))
		}
	}
}

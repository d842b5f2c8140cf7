package domain

import "time"

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Repeat kinds. They govern how Days, Dates and Time are read:
// once uses the first Dates entry plus Time, days uses the weekday set,
// date uses every Dates entry paired with the same Time.
const (
	RepeatOnce = "once"
	RepeatDays = "days"
	RepeatDate = "date"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Task represents a user-owned activity item. Older task rows carry a single
// absolute TaskTime instead of the repeat descriptor; Normalize folds that
// variant into the richer schema so callers never branch on field presence.
type Task struct {
	ID          string     `json:"id"`
	Username    string     `json:"user"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Repeat      string     `json:"repeat"`
	Days        []string   `json:"days"`
	Dates       []string   `json:"dates"`
	Time        string     `json:"time,omitempty"`
	TaskTime    *time.Time `json:"taskTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Normalize applies schema defaults and rewrites a legacy absolute-timestamp
// task as a one-shot dated task.
func (t *Task) Normalize(loc *time.Location) {
	if t == nil {
		return
	}
	if loc == nil {
		loc = time.Local
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Days == nil {
		t.Days = []string{}
	}
	if t.Dates == nil {
		t.Dates = []string{}
	}
	if t.TaskTime != nil && len(t.Dates) == 0 && t.Time == "" {
		at := t.TaskTime.In(loc)
		t.Repeat = RepeatOnce
		t.Dates = []string{at.Format(DateLayout)}
		t.Time = at.Format(TimeLayout)
	}
	if t.Repeat == "" {
		t.Repeat = RepeatOnce
	}
}

// IsActionable reports whether the task is still worth notifying about.
func (t *Task) IsActionable() bool {
	return t != nil && t.Status == StatusPending
}

// Occurrences resolves the concrete instants the task is scheduled for.
// Only once and date tasks have resolvable instants; weekday-recurring
// tasks yield none. Malformed date or time strings are skipped.
func (t *Task) Occurrences(loc *time.Location) []time.Time {
	if t == nil || t.Time == "" {
		return nil
	}
	if t.Repeat != RepeatOnce && t.Repeat != RepeatDate {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	dates := t.Dates
	if t.Repeat == RepeatOnce && len(dates) > 1 {
		dates = dates[:1]
	}

	var out []time.Time
	for _, d := range dates {
		at, err := time.ParseInLocation(DateLayout+" "+TimeLayout, d+" "+t.Time, loc)
		if err != nil {
			continue
		}
		out = append(out, at)
	}
	return out
}

// Validate checks the fields a create or full edit must carry.
func (t *Task) Validate() error {
	if t == nil || t.Title == "" {
		return ErrTitleRequired
	}
	switch t.Repeat {
	case "", RepeatOnce, RepeatDays, RepeatDate:
	default:
		return NewError(ErrCodeInvalid, "unknown repeat kind")
	}
	return nil
}

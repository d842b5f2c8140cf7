package notify

import (
	"time"

	"github.com/workaholic/backend/domain"
)

// Window is a half-open due interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(at time.Time) bool {
	return !at.Before(w.From) && at.Before(w.To)
}

// DueTask pairs a matched task with the occurrence that put it in the window.
type DueTask struct {
	Task domain.Task
	At   time.Time
}

// matchWindow reports the first occurrence of the task inside the window.
// Legacy absolute-timestamp tasks arrive normalized, so one occurrence check
// covers both schema variants. Weekday-recurring tasks have no resolvable
// occurrence and never match; see the open questions in DESIGN.md.
func matchWindow(task *domain.Task, w Window, loc *time.Location) (time.Time, bool) {
	for _, at := range task.Occurrences(loc) {
		if w.Contains(at) {
			return at, true
		}
	}
	return time.Time{}, false
}

// matchLookahead reproduces the on-demand scan rule: a repeat=date task is
// due when any dates entry falls inside the window's date range and its time
// equals the window end's HH:mm. The exact-minute comparison is intentional,
// not a range over time-of-day.
func matchLookahead(task *domain.Task, now, soon time.Time, loc *time.Location) bool {
	if task == nil || task.Repeat != domain.RepeatDate {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	if task.Time != soon.In(loc).Format(domain.TimeLayout) {
		return false
	}

	from := now.In(loc).Format(domain.DateLayout)
	to := soon.In(loc).Format(domain.DateLayout)
	for _, d := range task.Dates {
		if d >= from && d <= to {
			return true
		}
	}
	return false
}

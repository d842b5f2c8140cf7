package notify

import (
	"testing"
	"time"

	"github.com/workaholic/backend/domain"
)

func TestWindowContains(t *testing.T) {
	from := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	w := Window{From: from, To: from.Add(time.Minute)}

	if !w.Contains(from) {
		t.Fatal("window start must be included")
	}
	if !w.Contains(from.Add(59 * time.Second)) {
		t.Fatal("instant inside window must be included")
	}
	if w.Contains(from.Add(time.Minute)) {
		t.Fatal("window end must be excluded")
	}
	if w.Contains(from.Add(-time.Second)) {
		t.Fatal("instant before window must be excluded")
	}
}

func TestMatchWindow(t *testing.T) {
	// A pass at 17:30 with a 30m offset and 1m width targets [18:00, 18:01).
	now := time.Date(2025, 9, 23, 17, 30, 0, 0, time.UTC)
	w := Window{From: now.Add(30 * time.Minute), To: now.Add(31 * time.Minute)}

	cases := []struct {
		name  string
		task  domain.Task
		match bool
	}{
		{
			name:  "date task at window start",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "18:00"},
			match: true,
		},
		{
			name:  "once task at window start",
			task:  domain.Task{Repeat: domain.RepeatOnce, Dates: []string{"2025-09-23"}, Time: "18:00"},
			match: true,
		},
		{
			name:  "one minute late",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "18:01"},
			match: false,
		},
		{
			name:  "one minute early",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "17:59"},
			match: false,
		},
		{
			name:  "wrong day",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-24"}, Time: "18:00"},
			match: false,
		},
		{
			name:  "later date entry still matches",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-20", "2025-09-23"}, Time: "18:00"},
			match: true,
		},
		{
			name:  "weekday recurrence never matches",
			task:  domain.Task{Repeat: domain.RepeatDays, Days: []string{"Tuesday"}, Time: "18:00"},
			match: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at, ok := matchWindow(&tc.task, w, time.UTC)
			if ok != tc.match {
				t.Fatalf("match = %v, want %v", ok, tc.match)
			}
			if ok && !w.Contains(at) {
				t.Fatalf("matched instant %s outside window", at)
			}
		})
	}
}

func TestMatchWindowLegacyTask(t *testing.T) {
	now := time.Date(2025, 9, 23, 17, 30, 0, 0, time.UTC)
	w := Window{From: now.Add(30 * time.Minute), To: now.Add(31 * time.Minute)}

	at := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	task := domain.Task{Title: "legacy", TaskTime: &at}
	task.Normalize(time.UTC)

	if _, ok := matchWindow(&task, w, time.UTC); !ok {
		t.Fatal("normalized legacy task must match the window")
	}
}

func TestMatchLookahead(t *testing.T) {
	now := time.Date(2025, 9, 23, 17, 50, 0, 0, time.UTC)
	soon := now.Add(10 * time.Minute)

	cases := []struct {
		name  string
		task  domain.Task
		match bool
	}{
		{
			name:  "exact minute on today",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "18:00"},
			match: true,
		},
		{
			name:  "off by one minute",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "18:01"},
			match: false,
		},
		{
			name:  "date outside range",
			task:  domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-24"}, Time: "18:00"},
			match: false,
		},
		{
			name:  "once kind excluded",
			task:  domain.Task{Repeat: domain.RepeatOnce, Dates: []string{"2025-09-23"}, Time: "18:00"},
			match: false,
		},
		{
			name:  "days kind excluded",
			task:  domain.Task{Repeat: domain.RepeatDays, Days: []string{"Tuesday"}, Time: "18:00"},
			match: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchLookahead(&tc.task, now, soon, time.UTC); got != tc.match {
				t.Fatalf("match = %v, want %v", got, tc.match)
			}
		})
	}
}

func TestMatchLookaheadCrossesMidnight(t *testing.T) {
	// 23:55 plus ten minutes lands on the next calendar day, so both dates
	// are inside the range; only the target minute on the later day matches.
	now := time.Date(2025, 9, 23, 23, 55, 0, 0, time.UTC)
	soon := now.Add(10 * time.Minute)

	task := domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-24"}, Time: "00:05"}
	if !matchLookahead(&task, now, soon, time.UTC) {
		t.Fatal("next-day date inside range must match")
	}

	sameMinuteToday := domain.Task{Repeat: domain.RepeatDate, Dates: []string{"2025-09-23"}, Time: "00:05"}
	if !matchLookahead(&sameMinuteToday, now, soon, time.UTC) {
		t.Fatal("range comparison is by calendar date, today's entry also matches")
	}
}

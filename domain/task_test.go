package domain

import (
	"testing"
	"time"
)

func TestNormalizeDefaults(t *testing.T) {
	task := &Task{Title: "write report"}
	task.Normalize(time.UTC)

	if task.Status != StatusPending {
		t.Fatalf("status = %q, want %q", task.Status, StatusPending)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("priority = %q, want %q", task.Priority, PriorityMedium)
	}
	if task.Repeat != RepeatOnce {
		t.Fatalf("repeat = %q, want %q", task.Repeat, RepeatOnce)
	}
	if task.Days == nil || task.Dates == nil {
		t.Fatal("days and dates must be non-nil after normalize")
	}
}

func TestNormalizeLegacyTaskTime(t *testing.T) {
	at := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	task := &Task{Title: "standup", TaskTime: &at}
	task.Normalize(time.UTC)

	if task.Repeat != RepeatOnce {
		t.Fatalf("repeat = %q, want %q", task.Repeat, RepeatOnce)
	}
	if len(task.Dates) != 1 || task.Dates[0] != "2025-09-23" {
		t.Fatalf("dates = %v, want [2025-09-23]", task.Dates)
	}
	if task.Time != "18:00" {
		t.Fatalf("time = %q, want 18:00", task.Time)
	}
}

func TestNormalizeLegacyDoesNotOverwrite(t *testing.T) {
	at := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	task := &Task{
		Title:    "standup",
		TaskTime: &at,
		Repeat:   RepeatDate,
		Dates:    []string{"2025-10-01"},
		Time:     "09:30",
	}
	task.Normalize(time.UTC)

	if task.Repeat != RepeatDate || task.Time != "09:30" {
		t.Fatalf("normalize overwrote explicit schedule: repeat=%q time=%q", task.Repeat, task.Time)
	}
	if len(task.Dates) != 1 || task.Dates[0] != "2025-10-01" {
		t.Fatalf("dates = %v, want [2025-10-01]", task.Dates)
	}
}

func TestOccurrences(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want []string
	}{
		{
			name: "once uses first date only",
			task: Task{Repeat: RepeatOnce, Dates: []string{"2025-09-23", "2025-09-24"}, Time: "18:00"},
			want: []string{"2025-09-23T18:00:00Z"},
		},
		{
			name: "date expands every entry",
			task: Task{Repeat: RepeatDate, Dates: []string{"2025-09-23", "2025-09-24"}, Time: "18:00"},
			want: []string{"2025-09-23T18:00:00Z", "2025-09-24T18:00:00Z"},
		},
		{
			name: "days yields nothing",
			task: Task{Repeat: RepeatDays, Days: []string{"Monday"}, Time: "18:00"},
			want: nil,
		},
		{
			name: "malformed date skipped",
			task: Task{Repeat: RepeatDate, Dates: []string{"not-a-date", "2025-09-24"}, Time: "18:00"},
			want: []string{"2025-09-24T18:00:00Z"},
		},
		{
			name: "empty time yields nothing",
			task: Task{Repeat: RepeatDate, Dates: []string{"2025-09-23"}},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.task.Occurrences(time.UTC)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d occurrences, want %d", len(got), len(tc.want))
			}
			for i, at := range got {
				if at.Format(time.RFC3339) != tc.want[i] {
					t.Fatalf("occurrence[%d] = %s, want %s", i, at.Format(time.RFC3339), tc.want[i])
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (&Task{}).Validate(); err != ErrTitleRequired {
		t.Fatalf("empty task: got %v, want ErrTitleRequired", err)
	}
	if err := (&Task{Title: "x", Repeat: "weekly"}).Validate(); err == nil {
		t.Fatal("unknown repeat kind accepted")
	}
	if err := (&Task{Title: "x", Repeat: RepeatDays}).Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
}

func TestIsActionable(t *testing.T) {
	if !(&Task{Status: StatusPending}).IsActionable() {
		t.Fatal("pending task must be actionable")
	}
	for _, status := range []string{StatusInProgress, StatusCompleted, StatusCancelled} {
		if (&Task{Status: status}).IsActionable() {
			t.Fatalf("%s task must not be actionable", status)
		}
	}
}

package onboarding

import (
	"testing"
	"time"
)

func tasksFixture() Tasks {
	return Tasks{
		{ID: "t1", Title: "Join the org Discord", Required: true},
		{ID: "t2", Title: "Read the flight SOP", Required: true},
		{ID: "t3", Title: "Fly a patrol with a wing leader", Required: true},
		{ID: "t4", Title: "Set up voice attenuation", Required: false},
	}
}

func TestCompletionPercentage(t *testing.T) {
	tasks := tasksFixture()

	cases := []struct {
		name      string
		completed []string
		want      int
	}{
		{"nothing done", nil, 0},
		{"one of four", []string{"t1"}, 25},
		{"half done", []string{"t1", "t2"}, 50},
		{"all done", []string{"t1", "t2", "t3", "t4"}, 100},
		{"unknown ids ignored", []string{"t1", "ghost", "stale"}, 25},
		{"only unknown ids", []string{"ghost"}, 0},
	}

	for _, c := range cases {
		if got := CompletionPercentage(tasks, c.completed); got != c.want {
			t.Errorf("%s: CompletionPercentage = %d, want %d", c.name, got, c.want)
		}
	}

	if got := CompletionPercentage(Tasks{}, []string{"t1"}); got != 0 {
		t.Errorf("empty template: CompletionPercentage = %d, want 0", got)
	}
}

func TestCompletionPercentage_RoundsDown(t *testing.T) {
	tasks := Tasks{
		{ID: "a", Title: "a", Required: true},
		{ID: "b", Title: "b", Required: true},
		{ID: "c", Title: "c", Required: true},
	}
	// 1/3 = 33.33 -> 33
	if got := CompletionPercentage(tasks, []string{"a"}); got != 33 {
		t.Errorf("CompletionPercentage = %d, want 33", got)
	}
	// 2/3 = 66.67 -> 66
	if got := CompletionPercentage(tasks, []string{"a", "b"}); got != 66 {
		t.Errorf("CompletionPercentage = %d, want 66", got)
	}
}

func TestCompletionPercentage_Monotonic(t *testing.T) {
	tasks := tasksFixture()
	completed := []string{}
	last := 0
	for _, task := range tasks {
		completed = append(completed, task.ID)
		got := CompletionPercentage(tasks, completed)
		if got < last {
			t.Fatalf("completing %s dropped percentage from %d to %d", task.ID, last, got)
		}
		last = got
	}
	if last != 100 {
		t.Fatalf("all tasks completed but percentage = %d", last)
	}
}

func TestRequiredComplete(t *testing.T) {
	tasks := tasksFixture()

	cases := []struct {
		name      string
		completed []string
		want      bool
	}{
		{"nothing done", nil, false},
		{"required done, optional skipped", []string{"t1", "t2", "t3"}, true},
		{"optional done, required missing", []string{"t4"}, false},
		{"one required missing", []string{"t1", "t2", "t4"}, false},
		{"everything done", []string{"t1", "t2", "t3", "t4"}, true},
	}

	for _, c := range cases {
		if got := RequiredComplete(tasks, c.completed); got != c.want {
			t.Errorf("%s: RequiredComplete = %v, want %v", c.name, got, c.want)
		}
	}

	// A template with no required tasks is complete by definition.
	optionalOnly := Tasks{{ID: "x", Title: "x", Required: false}}
	if !RequiredComplete(optionalOnly, nil) {
		t.Error("template without required tasks should report complete")
	}
}

func TestDeriveStatus(t *testing.T) {
	tasks := tasksFixture()

	cases := []struct {
		name      string
		completed []string
		want      ProgressStatus
	}{
		{"untouched", nil, ProgressStatusNotStarted},
		{"started", []string{"t1"}, ProgressStatusInProgress},
		{"required done", []string{"t1", "t2", "t3"}, ProgressStatusCompleted},
		{"optional only counts as started", []string{"t4"}, ProgressStatusInProgress},
	}

	for _, c := range cases {
		if got := DeriveStatus(tasks, c.completed); got != c.want {
			t.Errorf("%s: DeriveStatus = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestEstimatedCompletionDate(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := EstimatedCompletionDate(start, 14)
	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EstimatedCompletionDate = %s, want %s", got, want)
	}

	// Month rollover
	got = EstimatedCompletionDate(time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC), 10)
	want = time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EstimatedCompletionDate rollover = %s, want %s", got, want)
	}
}

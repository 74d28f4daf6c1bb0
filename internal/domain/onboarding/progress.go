package onboarding

import "time"

// The progress calculator. Pure functions over a template's task list and a
// set of completed task ids; persistence stores the results but recomputes
// them here on every write.

// CompletionPercentage returns completed/total in whole percent, rounded
// down. Only ids that actually belong to the template count, so a stale or
// foreign id can never push the number past 100.
func CompletionPercentage(tasks Tasks, completed []string) int {
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, task := range tasks {
		if containsID(completed, task.ID) {
			done++
		}
	}

	return done * 100 / len(tasks)
}

// RequiredComplete reports whether every required task is in the completed
// set. Optional tasks never hold completion back.
func RequiredComplete(tasks Tasks, completed []string) bool {
	for _, task := range tasks {
		if task.Required && !containsID(completed, task.ID) {
			return false
		}
	}
	return true
}

// DeriveStatus maps a task/completion pair to a progress status. Overdue is
// not derived here: it is applied by the sweep against DueAt, because a
// record with no new writes still goes overdue.
func DeriveStatus(tasks Tasks, completed []string) ProgressStatus {
	done := 0
	for _, task := range tasks {
		if containsID(completed, task.ID) {
			done++
		}
	}

	switch {
	case done == 0:
		return ProgressStatusNotStarted
	case RequiredComplete(tasks, completed):
		return ProgressStatusCompleted
	default:
		return ProgressStatusInProgress
	}
}

// EstimatedCompletionDate is the template's promise: start date plus its
// estimated duration.
func EstimatedCompletionDate(startedAt time.Time, estimatedDurationDays int) time.Time {
	return startedAt.AddDate(0, 0, estimatedDurationDays)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

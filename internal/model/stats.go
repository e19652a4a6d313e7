package model

import (
	"math"
	"time"
)

// DashboardStats is derived from the task collection on demand, never stored.
type DashboardStats struct {
	TotalTasks             int
	CompletedTasks         int
	PendingTasks           int
	OverdueTasks           int
	ProductivityPercentage int
}

// ComputeDashboardStats counts tasks by displayed status at the given time.
// Pending is derived by subtraction so the three counts always partition the
// total, including at the deadline == now boundary.
func ComputeDashboardStats(tasks []Task, now time.Time) DashboardStats {
	total := len(tasks)

	var done, overdue int
	for _, t := range tasks {
		if t.Status == TaskStatusDone {
			done++
		} else if t.Deadline.Before(now) {
			overdue++
		}
	}

	productivity := 0
	if total > 0 {
		productivity = int(math.Round(float64(done) / float64(total) * 100))
	}

	return DashboardStats{
		TotalTasks:             total,
		CompletedTasks:         done,
		PendingTasks:           total - done - overdue,
		OverdueTasks:           overdue,
		ProductivityPercentage: productivity,
	}
}

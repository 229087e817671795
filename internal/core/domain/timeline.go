package domain

import (
	"slices"
	"time"
)

// MilestoneStatus is the progress state of a timeline milestone.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
)

var milestoneStatuses = []MilestoneStatus{MilestonePending, MilestoneInProgress, MilestoneCompleted}

func (s MilestoneStatus) Valid() bool {
	return slices.Contains(milestoneStatuses, s)
}

// Milestone is a dated entry on a project's timeline. Deadline carries a
// calendar date only.
type Milestone struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"project_id"`
	Name      string          `json:"milestone"`
	Deadline  time.Time       `json:"deadline"`
	Status    MilestoneStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// TimelineSummary counts milestones per status.
type TimelineSummary struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

func SummarizeTimeline(milestones []Milestone) TimelineSummary {
	var sum TimelineSummary
	for _, m := range milestones {
		switch m.Status {
		case MilestonePending:
			sum.Pending++
		case MilestoneInProgress:
			sum.InProgress++
		case MilestoneCompleted:
			sum.Completed++
		}
	}
	return sum
}

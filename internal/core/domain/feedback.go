package domain

import (
	"slices"
	"time"
)

// FeedbackItem is what a piece of client feedback refers to.
type FeedbackItem string

const (
	FeedbackDrawing FeedbackItem = "drawing"
	FeedbackImage   FeedbackItem = "image"
)

func (i FeedbackItem) Valid() bool {
	return i == FeedbackDrawing || i == FeedbackImage
}

// ApprovalStatus is the client's verdict on a feedback item.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var approvalStatuses = []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected}

func (s ApprovalStatus) Valid() bool {
	return slices.Contains(approvalStatuses, s)
}

// Feedback is written by the project's client. Designers read it to track
// approvals.
type Feedback struct {
	ID             int64          `json:"id"`
	ProjectID      int64          `json:"project_id"`
	ItemType       FeedbackItem   `json:"item_type"`
	Comment        string         `json:"comment"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ApprovalSummary counts feedback per approval status.
type ApprovalSummary struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

func SummarizeApprovals(items []Feedback) ApprovalSummary {
	var sum ApprovalSummary
	for _, f := range items {
		switch f.ApprovalStatus {
		case ApprovalApproved:
			sum.Approved++
		case ApprovalPending:
			sum.Pending++
		case ApprovalRejected:
			sum.Rejected++
		}
	}
	return sum
}

package domain

import "testing"

func TestSummarizeTimeline(t *testing.T) {
	milestones := []Milestone{
		{Status: MilestonePending},
		{Status: MilestoneCompleted},
		{Status: MilestoneInProgress},
		{Status: MilestoneCompleted},
		{Status: "unknown"},
	}
	want := TimelineSummary{Pending: 1, InProgress: 1, Completed: 2}
	if got := SummarizeTimeline(milestones); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMilestoneStatus_Valid(t *testing.T) {
	for _, s := range []MilestoneStatus{MilestonePending, MilestoneInProgress, MilestoneCompleted} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []MilestoneStatus{"", "done", "Pending"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestSummarizeApprovals(t *testing.T) {
	items := []Feedback{
		{ApprovalStatus: ApprovalApproved},
		{ApprovalStatus: ApprovalRejected},
		{ApprovalStatus: ApprovalPending},
		{ApprovalStatus: ApprovalPending},
	}
	want := ApprovalSummary{Approved: 1, Pending: 2, Rejected: 1}
	if got := SummarizeApprovals(items); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !FeedbackImage.Valid() || FeedbackItem("video").Valid() {
		t.Fatalf("unexpected feedback item validity")
	}
	if !ApprovalRejected.Valid() || ApprovalStatus("maybe").Valid() {
		t.Fatalf("unexpected approval status validity")
	}
}

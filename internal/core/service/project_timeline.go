package service

import (
	"context"
	"strings"
	"time"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// Timeline returns the project's milestones by deadline with status counts.
func (s *ProjectService) Timeline(ctx context.Context, sess *domain.Session, projectID int64) (*ports.Timeline, error) {
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	milestones, err := s.repo.ListMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ports.Timeline{Milestones: milestones, Summary: domain.SummarizeTimeline(milestones)}, nil
}

func (s *ProjectService) CreateMilestone(ctx context.Context, sess *domain.Session, projectID int64, in ports.CreateMilestoneInput) (*domain.Milestone, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrMissingTitle
	}
	if in.Deadline.IsZero() {
		return nil, domain.ErrMissingDeadline
	}
	status := in.Status
	if status == "" {
		status = domain.MilestonePending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	return s.repo.CreateMilestone(ctx, &domain.Milestone{
		ProjectID: projectID,
		Name:      name,
		Deadline:  calendarDate(in.Deadline),
		Status:    status,
	})
}

func (s *ProjectService) UpdateMilestone(ctx context.Context, sess *domain.Session, projectID, milestoneID int64, in ports.UpdateMilestoneInput) (*domain.Milestone, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrMissingTitle
	}
	if in.Deadline != nil && in.Deadline.IsZero() {
		return nil, domain.ErrMissingDeadline
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	milestones, err := s.repo.ListMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range milestones {
		if milestones[i].ID != milestoneID {
			continue
		}
		m := milestones[i]
		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Deadline != nil {
			m.Deadline = calendarDate(*in.Deadline)
		}
		if in.Status != nil {
			m.Status = *in.Status
		}
		if err := s.repo.UpdateMilestone(ctx, &m); err != nil {
			return nil, err
		}
		return &m, nil
	}
	return nil, domain.ErrNotFound
}

func (s *ProjectService) DeleteMilestone(ctx context.Context, sess *domain.Session, projectID, milestoneID int64) error {
	if err := requireDesigner(sess); err != nil {
		return err
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return err
	}
	return s.repo.DeleteMilestone(ctx, projectID, milestoneID)
}

// calendarDate drops the clock part of t, keeping its calendar day.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

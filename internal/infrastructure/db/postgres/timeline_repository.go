package postgres

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

const (
	milestoneSelect = `SELECT id, project_id, milestone, deadline, status, created_at FROM milestones WHERE project_id = $1 ORDER BY deadline, id`
	feedbackSelect  = `SELECT id, project_id, item_type, comment, approval_status, created_at FROM feedback WHERE project_id = $1 ORDER BY created_at DESC, id DESC`
)

func (r *ProjectRepository) ListMilestones(ctx context.Context, projectID int64) ([]domain.Milestone, error) {
	rows, err := r.gw.Query(ctx, milestoneSelect, projectID)
	if err != nil {
		return nil, wrap("list", milestonesTable, err)
	}
	out := make([]domain.Milestone, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Milestone{
			ID:        row.Int64("id"),
			ProjectID: row.Int64("project_id"),
			Name:      row.String("milestone"),
			Deadline:  row.Time("deadline"),
			Status:    domain.MilestoneStatus(row.String("status")),
			CreatedAt: row.Time("created_at"),
		})
	}
	return out, nil
}

func (r *ProjectRepository) CreateMilestone(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error) {
	id, err := r.gw.Insert(ctx, milestonesTable, Fields{
		"project_id": m.ProjectID,
		"milestone":  m.Name,
		"deadline":   m.Deadline,
		"status":     string(m.Status),
	})
	if err != nil {
		return nil, err
	}
	created := *m
	created.ID = id
	return &created, nil
}

func (r *ProjectRepository) UpdateMilestone(ctx context.Context, m *domain.Milestone) error {
	n, err := r.gw.Update(ctx, milestonesTable,
		Fields{"milestone": m.Name, "deadline": m.Deadline, "status": string(m.Status)},
		Predicate{"id": m.ID, "project_id": m.ProjectID},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteMilestone(ctx context.Context, projectID, milestoneID int64) error {
	return r.deleteScoped(ctx, milestonesTable, projectID, milestoneID)
}

func (r *ProjectRepository) ListFeedback(ctx context.Context, projectID int64) ([]domain.Feedback, error) {
	rows, err := r.gw.Query(ctx, feedbackSelect, projectID)
	if err != nil {
		return nil, wrap("list", feedbackTable, err)
	}
	out := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Feedback{
			ID:             row.Int64("id"),
			ProjectID:      row.Int64("project_id"),
			ItemType:       domain.FeedbackItem(row.String("item_type")),
			Comment:        row.String("comment"),
			ApprovalStatus: domain.ApprovalStatus(row.String("approval_status")),
			CreatedAt:      row.Time("created_at"),
		})
	}
	return out, nil
}

func (r *ProjectRepository) CreateFeedback(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	id, err := r.gw.Insert(ctx, feedbackTable, Fields{
		"project_id":      f.ProjectID,
		"item_type":       string(f.ItemType),
		"comment":         f.Comment,
		"approval_status": string(f.ApprovalStatus),
	})
	if err != nil {
		return nil, err
	}
	created := *f
	created.ID = id
	return &created, nil
}

func (r *ProjectRepository) UpdateFeedbackStatus(ctx context.Context, projectID, feedbackID int64, status domain.ApprovalStatus) error {
	n, err := r.gw.Update(ctx, feedbackTable,
		Fields{"approval_status": string(status)},
		Predicate{"id": feedbackID, "project_id": projectID},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

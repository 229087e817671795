package service

import (
	"context"
	"strings"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// Feedback lists the client's feedback, newest first, with approval counts.
// Both the designer and the client of the project may read it.
func (s *ProjectService) Feedback(ctx context.Context, sess *domain.Session, projectID int64) (*ports.FeedbackList, error) {
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListFeedback(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ports.FeedbackList{Items: items, Summary: domain.SummarizeApprovals(items)}, nil
}

// SubmitFeedback records feedback from the project's client.
func (s *ProjectService) SubmitFeedback(ctx context.Context, sess *domain.Session, projectID int64, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if err := requireClient(sess); err != nil {
		return nil, err
	}
	if !in.ItemType.Valid() {
		return nil, domain.ErrInvalidFeedback
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, domain.ErrMissingComment
	}
	status := in.ApprovalStatus
	if status == "" {
		status = domain.ApprovalPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	fb, err := s.repo.CreateFeedback(ctx, &domain.Feedback{
		ProjectID:      projectID,
		ItemType:       in.ItemType,
		Comment:        comment,
		ApprovalStatus: status,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("project_id", projectID).Str("status", string(status)).Msg("feedback submitted")
	return fb, nil
}

// SetApproval lets the client change the verdict on earlier feedback.
func (s *ProjectService) SetApproval(ctx context.Context, sess *domain.Session, projectID, feedbackID int64, status domain.ApprovalStatus) (*domain.Feedback, error) {
	if err := requireClient(sess); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListFeedback(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != feedbackID {
			continue
		}
		if err := s.repo.UpdateFeedbackStatus(ctx, projectID, feedbackID, status); err != nil {
			return nil, err
		}
		fb := items[i]
		fb.ApprovalStatus = status
		return &fb, nil
	}
	return nil, domain.ErrNotFound
}

func requireClient(sess *domain.Session) error {
	if !sess.IsLoggedIn() {
		return domain.ErrUnauthenticated
	}
	if !sess.IsClient() {
		return domain.ErrForbidden
	}
	return nil
}

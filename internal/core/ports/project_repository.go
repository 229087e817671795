package ports

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// ProjectRepository persists projects together with their tasks and budget
// items. Single-row lookups and scoped writes return domain.ErrNotFound when
// nothing matches.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByClient(ctx context.Context, clientID int64) (*domain.Project, error)
	ListByDesigner(ctx context.Context, designerID int64) ([]domain.Project, error)
	Delete(ctx context.Context, id int64) error

	CreateTasks(ctx context.Context, projectID int64, titles []string) error
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, projectID, taskID int64) error

	CreateBudgetItems(ctx context.Context, projectID int64, names []string) error
	CreateBudgetItem(ctx context.Context, item *domain.BudgetItem) (*domain.BudgetItem, error)
	ListBudgetItems(ctx context.Context, projectID int64) ([]domain.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, item *domain.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, projectID, itemID int64) error

	TimelineRepository
	FeedbackRepository
}

// TimelineRepository stores project milestones, listed by deadline.
type TimelineRepository interface {
	ListMilestones(ctx context.Context, projectID int64) ([]domain.Milestone, error)
	CreateMilestone(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error)
	UpdateMilestone(ctx context.Context, m *domain.Milestone) error
	DeleteMilestone(ctx context.Context, projectID, milestoneID int64) error
}

// FeedbackRepository stores client feedback, listed newest first.
type FeedbackRepository interface {
	ListFeedback(ctx context.Context, projectID int64) ([]domain.Feedback, error)
	CreateFeedback(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, projectID, feedbackID int64, status domain.ApprovalStatus) error
}

package ports

import (
	"context"
	"io"
	"time"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

type CreateProjectInput struct {
	ClientName       string
	ClientEmail      string
	SiteType         string
	ContactDetails   string
	PreferredContact string
}

type CreateProjectResult struct {
	Project    *domain.Project
	Client     *domain.User
	AccessCode string
}

type CreateTaskInput struct {
	Title       string
	Description string
}

type UpdateTaskInput struct {
	ProgressPercent int
	Comments        *string
}

type CreateBudgetItemInput struct {
	ItemName      string
	EstimatedCost int64
	ActualCost    int64
}

type UpdateBudgetItemInput struct {
	EstimatedCost *int64
	ActualCost    *int64
}

// CreateMilestoneInput defaults Status to pending when empty.
type CreateMilestoneInput struct {
	Name     string
	Deadline time.Time
	Status   domain.MilestoneStatus
}

// UpdateMilestoneInput changes only the fields that are set.
type UpdateMilestoneInput struct {
	Name     *string
	Deadline *time.Time
	Status   *domain.MilestoneStatus
}

// SubmitFeedbackInput defaults ApprovalStatus to pending when empty.
type SubmitFeedbackInput struct {
	ItemType       domain.FeedbackItem
	Comment        string
	ApprovalStatus domain.ApprovalStatus
}

type TaskList struct {
	Tasks      []domain.Task
	Completion float64
}

type BudgetReport struct {
	Items   []domain.BudgetItem
	Summary domain.BudgetSummary
}

type Timeline struct {
	Milestones []domain.Milestone
	Summary    domain.TimelineSummary
}

type FeedbackList struct {
	Items   []domain.Feedback
	Summary domain.ApprovalSummary
}

// StoredFile is the content of one upload.
type StoredFile struct {
	Name    string
	Content []byte
}

// ProjectService scopes every call to the session: designers see the
// projects they created, clients only their own project.
type ProjectService interface {
	CreateProject(ctx context.Context, s *domain.Session, in CreateProjectInput) (*CreateProjectResult, error)
	ListProjects(ctx context.Context, s *domain.Session) ([]domain.Project, error)
	GetProject(ctx context.Context, s *domain.Session, id int64) (*domain.Project, error)
	MyProject(ctx context.Context, s *domain.Session) (*domain.Project, error)
	DeleteProject(ctx context.Context, s *domain.Session, id int64) error

	ListTasks(ctx context.Context, s *domain.Session, projectID int64) (*TaskList, error)
	CreateTask(ctx context.Context, s *domain.Session, projectID int64, in CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, s *domain.Session, projectID, taskID int64, in UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, s *domain.Session, projectID, taskID int64) error

	Budget(ctx context.Context, s *domain.Session, projectID int64) (*BudgetReport, error)
	CreateBudgetItem(ctx context.Context, s *domain.Session, projectID int64, in CreateBudgetItemInput) (*domain.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, s *domain.Session, projectID, itemID int64, in UpdateBudgetItemInput) (*domain.BudgetItem, error)
	DeleteBudgetItem(ctx context.Context, s *domain.Session, projectID, itemID int64) error
	BudgetPDF(ctx context.Context, s *domain.Session, projectID int64) ([]byte, error)

	Timeline(ctx context.Context, s *domain.Session, projectID int64) (*Timeline, error)
	CreateMilestone(ctx context.Context, s *domain.Session, projectID int64, in CreateMilestoneInput) (*domain.Milestone, error)
	UpdateMilestone(ctx context.Context, s *domain.Session, projectID, milestoneID int64, in UpdateMilestoneInput) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, s *domain.Session, projectID, milestoneID int64) error

	Feedback(ctx context.Context, s *domain.Session, projectID int64) (*FeedbackList, error)
	SubmitFeedback(ctx context.Context, s *domain.Session, projectID int64, in SubmitFeedbackInput) (*domain.Feedback, error)
	SetApproval(ctx context.Context, s *domain.Session, projectID, feedbackID int64, status domain.ApprovalStatus) (*domain.Feedback, error)

	UploadFile(ctx context.Context, s *domain.Session, projectID int64, kind domain.FileKind, name string, content io.Reader) (string, error)
	ListFiles(ctx context.Context, s *domain.Session, projectID int64, kind domain.FileKind) ([]string, error)
	ReadFile(ctx context.Context, s *domain.Session, projectID int64, kind domain.FileKind, name string) (*StoredFile, error)
	DeleteFile(ctx context.Context, s *domain.Session, projectID int64, kind domain.FileKind, name string) error
}

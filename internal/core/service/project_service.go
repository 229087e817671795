package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// ProjectService implements the designer and client dashboards.
type ProjectService struct {
	repo     ports.ProjectRepository
	auth     ports.AuthService
	files    ports.ProjectFiles
	renderer ports.BudgetRenderer
	logger   zerolog.Logger
}

func NewProjectService(
	repo ports.ProjectRepository,
	auth ports.AuthService,
	files ports.ProjectFiles,
	renderer ports.BudgetRenderer,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		repo:     repo,
		auth:     auth,
		files:    files,
		renderer: renderer,
		logger:   logger,
	}
}

// CreateProject registers the client, creates the project with the default
// tasks and budget categories, and prepares its upload directories. The
// client's access code is returned once.
func (s *ProjectService) CreateProject(ctx context.Context, sess *domain.Session, in ports.CreateProjectInput) (*ports.CreateProjectResult, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}

	client, code, err := s.auth.RegisterClient(ctx, in.ClientName, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.Create(ctx, &domain.Project{
		ClientID:         client.ID,
		DesignerID:       sess.CurrentUserID(),
		SiteType:         strings.TrimSpace(in.SiteType),
		ContactDetails:   strings.TrimSpace(in.ContactDetails),
		PreferredContact: strings.TrimSpace(in.PreferredContact),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("client_id", client.ID).Msg("failed to create project")
		return nil, err
	}

	if err := s.seed(ctx, project.ID); err != nil {
		if derr := s.repo.Delete(ctx, project.ID); derr != nil {
			s.logger.Error().Err(derr).Int64("project_id", project.ID).Msg("failed to remove partially seeded project")
		}
		return nil, err
	}
	if s.files != nil {
		if err := s.files.CreateProjectDirs(ctx, project.ID); err != nil {
			s.logger.Warn().Err(err).Int64("project_id", project.ID).Msg("failed to create upload directories")
		}
	}

	project.ClientName = client.Name
	project.ClientEmail = client.Email
	s.logger.Info().Int64("project_id", project.ID).Int64("designer_id", project.DesignerID).Msg("project created")

	return &ports.CreateProjectResult{Project: project, Client: client, AccessCode: code}, nil
}

// ListProjects returns the designer's projects, newest first.
func (s *ProjectService) ListProjects(ctx context.Context, sess *domain.Session) ([]domain.Project, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	return s.repo.ListByDesigner(ctx, sess.CurrentUserID())
}

func (s *ProjectService) GetProject(ctx context.Context, sess *domain.Session, id int64) (*domain.Project, error) {
	return s.visible(ctx, sess, id)
}

// MyProject returns the project of the logged-in client.
func (s *ProjectService) MyProject(ctx context.Context, sess *domain.Session) (*domain.Project, error) {
	if err := requireClient(sess); err != nil {
		return nil, err
	}
	return s.repo.FindByClient(ctx, sess.CurrentUserID())
}

// DeleteProject removes the project rows and its stored files.
func (s *ProjectService) DeleteProject(ctx context.Context, sess *domain.Session, id int64) error {
	if err := requireDesigner(sess); err != nil {
		return err
	}
	if _, err := s.visible(ctx, sess, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.files != nil {
		if err := s.files.DeleteProjectFiles(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("project_id", id).Msg("failed to delete project files")
		}
	}
	s.logger.Info().Int64("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) ListTasks(ctx context.Context, sess *domain.Session, projectID int64) (*ports.TaskList, error) {
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ports.TaskList{Tasks: tasks, Completion: domain.TaskCompletion(tasks)}, nil
}

func (s *ProjectService) UpdateTask(ctx context.Context, sess *domain.Session, projectID, taskID int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	if in.ProgressPercent < 0 || in.ProgressPercent > 100 {
		return nil, domain.ErrInvalidProgress
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		task := tasks[i]
		task.ProgressPercent = in.ProgressPercent
		if in.Comments != nil {
			task.Comments = *in.Comments
		}
		if err := s.repo.UpdateTask(ctx, &task); err != nil {
			return nil, err
		}
		return &task, nil
	}
	return nil, domain.ErrNotFound
}

func (s *ProjectService) CreateTask(ctx context.Context, sess *domain.Session, projectID int64, in ports.CreateTaskInput) (*domain.Task, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrMissingTitle
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	return s.repo.CreateTask(ctx, &domain.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
	})
}

func (s *ProjectService) DeleteTask(ctx context.Context, sess *domain.Session, projectID, taskID int64) error {
	if err := requireDesigner(sess); err != nil {
		return err
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, projectID, taskID)
}

func (s *ProjectService) Budget(ctx context.Context, sess *domain.Session, projectID int64) (*ports.BudgetReport, error) {
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	return s.budget(ctx, projectID)
}

func (s *ProjectService) UpdateBudgetItem(ctx context.Context, sess *domain.Session, projectID, itemID int64, in ports.UpdateBudgetItemInput) (*domain.BudgetItem, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	if (in.EstimatedCost != nil && *in.EstimatedCost < 0) || (in.ActualCost != nil && *in.ActualCost < 0) {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListBudgetItems(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		item := items[i]
		if in.EstimatedCost != nil {
			item.EstimatedCost = *in.EstimatedCost
		}
		if in.ActualCost != nil {
			item.ActualCost = *in.ActualCost
		}
		if err := s.repo.UpdateBudgetItem(ctx, &item); err != nil {
			return nil, err
		}
		return &item, nil
	}
	return nil, domain.ErrNotFound
}

func (s *ProjectService) CreateBudgetItem(ctx context.Context, sess *domain.Session, projectID int64, in ports.CreateBudgetItemInput) (*domain.BudgetItem, error) {
	if err := requireDesigner(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	if in.EstimatedCost < 0 || in.ActualCost < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	return s.repo.CreateBudgetItem(ctx, &domain.BudgetItem{
		ProjectID:     projectID,
		ItemName:      name,
		EstimatedCost: in.EstimatedCost,
		ActualCost:    in.ActualCost,
	})
}

func (s *ProjectService) DeleteBudgetItem(ctx context.Context, sess *domain.Session, projectID, itemID int64) error {
	if err := requireDesigner(sess); err != nil {
		return err
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return err
	}
	return s.repo.DeleteBudgetItem(ctx, projectID, itemID)
}

// BudgetPDF renders the budget statement of a project.
func (s *ProjectService) BudgetPDF(ctx context.Context, sess *domain.Session, projectID int64) ([]byte, error) {
	project, err := s.visible(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	report, err := s.budget(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderBudget(project, report)
}

// seed adds the default tasks and budget categories of a new project.
func (s *ProjectService) seed(ctx context.Context, projectID int64) error {
	if err := s.repo.CreateTasks(ctx, projectID, domain.DefaultTasks); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if err := s.repo.CreateBudgetItems(ctx, projectID, domain.DefaultBudgetCategories); err != nil {
		return fmt.Errorf("seed budget: %w", err)
	}
	return nil
}

func (s *ProjectService) budget(ctx context.Context, projectID int64) (*ports.BudgetReport, error) {
	items, err := s.repo.ListBudgetItems(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ports.BudgetReport{Items: items, Summary: domain.SummarizeBudget(items)}, nil
}

// visible loads a project and hides it behind domain.ErrNotFound from
// sessions that do not own it.
func (s *ProjectService) visible(ctx context.Context, sess *domain.Session, id int64) (*domain.Project, error) {
	if !sess.IsLoggedIn() {
		return nil, domain.ErrUnauthenticated
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(sess) {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

func requireDesigner(sess *domain.Session) error {
	if !sess.IsLoggedIn() {
		return domain.ErrUnauthenticated
	}
	if !sess.IsDesigner() {
		return domain.ErrForbidden
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const (
	projectsTable   = "projects"
	tasksTable      = "tasks"
	budgetTable     = "budget_items"
	milestonesTable = "milestones"
	feedbackTable   = "feedback"
)

const projectSelect = `
SELECT p.id, p.client_id, p.designer_id, p.site_type, p.contact_details,
       p.preferred_contact, p.created_at,
       c.name AS client_name, c.email AS client_email,
       d.name AS designer_name, d.email AS designer_email
FROM projects p
JOIN users c ON c.id = p.client_id
JOIN users d ON d.id = p.designer_id`

// ProjectRepository implements ports.ProjectRepository on the gateway.
type ProjectRepository struct {
	gw *Gateway
}

func NewProjectRepository(gw *Gateway) ports.ProjectRepository {
	return &ProjectRepository{gw: gw}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	fields := Fields{
		"client_id":         p.ClientID,
		"designer_id":       p.DesignerID,
		"site_type":         p.SiteType,
		"contact_details":   p.ContactDetails,
		"preferred_contact": p.PreferredContact,
	}
	if !p.CreatedAt.IsZero() {
		fields["created_at"] = p.CreatedAt
	}

	id, err := r.gw.Insert(ctx, projectsTable, fields)
	if err != nil {
		return nil, err
	}
	created := *p
	created.ID = id
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	return r.queryOne(ctx, projectSelect+" WHERE p.id = $1", id)
}

func (r *ProjectRepository) FindByClient(ctx context.Context, clientID int64) (*domain.Project, error) {
	return r.queryOne(ctx, projectSelect+" WHERE p.client_id = $1 ORDER BY p.created_at DESC LIMIT 1", clientID)
}

func (r *ProjectRepository) ListByDesigner(ctx context.Context, designerID int64) ([]domain.Project, error) {
	rows, err := r.gw.Query(ctx, projectSelect+" WHERE p.designer_id = $1 ORDER BY p.created_at DESC, p.id DESC", designerID)
	if err != nil {
		return nil, wrap("list", projectsTable, err)
	}
	out := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, *projectFromRow(row))
	}
	return out, nil
}

// Delete relies on ON DELETE CASCADE for the project's child rows.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.gw.Delete(ctx, projectsTable, Predicate{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) CreateTasks(ctx context.Context, projectID int64, titles []string) error {
	for _, title := range titles {
		if _, err := r.gw.Insert(ctx, tasksTable, Fields{"project_id": projectID, "title": title}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProjectRepository) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	id, err := r.gw.Insert(ctx, tasksTable, Fields{
		"project_id":  task.ProjectID,
		"title":       task.Title,
		"description": task.Description,
	})
	if err != nil {
		return nil, err
	}
	created := *task
	created.ID = id
	return &created, nil
}

func (r *ProjectRepository) ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	rows, err := r.gw.Find(ctx, tasksTable, Predicate{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Task{
			ID:              row.Int64("id"),
			ProjectID:       row.Int64("project_id"),
			Title:           row.String("title"),
			Description:     row.String("description"),
			ProgressPercent: row.Int("progress_percent"),
			Comments:        row.String("comments"),
			CreatedAt:       row.Time("created_at"),
		})
	}
	return out, nil
}

func (r *ProjectRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	n, err := r.gw.Update(ctx, tasksTable,
		Fields{"progress_percent": task.ProgressPercent, "comments": task.Comments},
		Predicate{"id": task.ID, "project_id": task.ProjectID},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	return r.deleteScoped(ctx, tasksTable, projectID, taskID)
}

func (r *ProjectRepository) CreateBudgetItems(ctx context.Context, projectID int64, names []string) error {
	for _, name := range names {
		if _, err := r.gw.Insert(ctx, budgetTable, Fields{"project_id": projectID, "item_name": name}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProjectRepository) CreateBudgetItem(ctx context.Context, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	id, err := r.gw.Insert(ctx, budgetTable, Fields{
		"project_id":     item.ProjectID,
		"item_name":      item.ItemName,
		"estimated_cost": item.EstimatedCost,
		"actual_cost":    item.ActualCost,
	})
	if err != nil {
		return nil, err
	}
	created := *item
	created.ID = id
	return &created, nil
}

func (r *ProjectRepository) ListBudgetItems(ctx context.Context, projectID int64) ([]domain.BudgetItem, error) {
	rows, err := r.gw.Find(ctx, budgetTable, Predicate{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	out := make([]domain.BudgetItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.BudgetItem{
			ID:            row.Int64("id"),
			ProjectID:     row.Int64("project_id"),
			ItemName:      row.String("item_name"),
			EstimatedCost: row.Int64("estimated_cost"),
			ActualCost:    row.Int64("actual_cost"),
			CreatedAt:     row.Time("created_at"),
		})
	}
	return out, nil
}

func (r *ProjectRepository) UpdateBudgetItem(ctx context.Context, item *domain.BudgetItem) error {
	n, err := r.gw.Update(ctx, budgetTable,
		Fields{"estimated_cost": item.EstimatedCost, "actual_cost": item.ActualCost},
		Predicate{"id": item.ID, "project_id": item.ProjectID},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteBudgetItem(ctx context.Context, projectID, itemID int64) error {
	return r.deleteScoped(ctx, budgetTable, projectID, itemID)
}

// deleteScoped removes one child row of a project.
func (r *ProjectRepository) deleteScoped(ctx context.Context, table string, projectID, id int64) error {
	n, err := r.gw.Delete(ctx, table, Predicate{"id": id, "project_id": projectID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProjectRepository) queryOne(ctx context.Context, sql string, args ...any) (*domain.Project, error) {
	rows, err := r.gw.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("find", projectsTable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("project: %w", domain.ErrNotFound)
	}
	return projectFromRow(rows[0]), nil
}

func projectFromRow(row Row) *domain.Project {
	return &domain.Project{
		ID:               row.Int64("id"),
		ClientID:         row.Int64("client_id"),
		DesignerID:       row.Int64("designer_id"),
		SiteType:         row.String("site_type"),
		ContactDetails:   row.String("contact_details"),
		PreferredContact: row.String("preferred_contact"),
		CreatedAt:        row.Time("created_at"),
		ClientName:       row.String("client_name"),
		ClientEmail:      row.String("client_email"),
		DesignerName:     row.String("designer_name"),
		DesignerEmail:    row.String("designer_email"),
	}
}

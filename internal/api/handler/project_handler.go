package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/metrics"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// ProjectHandler serves the designer and client dashboards.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// --- Request / Response types ---

type createProjectRequest struct {
	ClientName       string `json:"client_name" validate:"required"`
	ClientEmail      string `json:"client_email" validate:"required"`
	SiteType         string `json:"site_type"`
	ContactDetails   string `json:"contact_details"`
	PreferredContact string `json:"preferred_contact"`
}

type createProjectResponse struct {
	Project    *domain.Project `json:"project"`
	Client     *domain.User    `json:"client"`
	AccessCode string          `json:"access_code"`
}

type projectListResponse struct {
	Projects []domain.Project `json:"projects"`
}

type updateTaskRequest struct {
	ProgressPercent *int    `json:"progress_percent" validate:"required"`
	Comments        *string `json:"comments"`
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type taskListResponse struct {
	Tasks      []domain.Task `json:"tasks"`
	Completion float64       `json:"completion"`
}

type updateBudgetItemRequest struct {
	EstimatedCost *int64 `json:"estimated_cost"`
	ActualCost    *int64 `json:"actual_cost"`
}

type createBudgetItemRequest struct {
	ItemName      string `json:"item_name" validate:"required"`
	EstimatedCost int64  `json:"estimated_cost"`
	ActualCost    int64  `json:"actual_cost"`
}

type budgetResponse struct {
	Items   []domain.BudgetItem  `json:"items"`
	Summary domain.BudgetSummary `json:"summary"`
}


// Create handles POST /v1/projects.
//
// @Summary      Create a client and their project
// @Description  Registers the client, seeds the default tasks and budget, and returns the client's access code once.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Client and site details"
// @Success      201   {object}  createProjectResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.CreateProject(c.Request().Context(), CurrentSession(c), ports.CreateProjectInput{
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		SiteType:         req.SiteType,
		ContactDetails:   req.ContactDetails,
		PreferredContact: req.PreferredContact,
	})
	if err != nil {
		return err
	}
	metrics.ProjectsCreatedTotal.Inc()
	metrics.RegistrationsTotal.WithLabelValues(domain.RoleClient).Inc()

	return c.JSON(http.StatusCreated, createProjectResponse{
		Project:    res.Project,
		Client:     res.Client,
		AccessCode: res.AccessCode,
	})
}

// List handles GET /v1/projects.
//
// @Summary      List the designer's projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  projectListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context(), CurrentSession(c))
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.service.GetProject(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project and its files
// @Tags         projects
// @Param        id   path  int  true  "Project id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProject(c.Request().Context(), CurrentSession(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MyProject handles GET /v1/me/project.
//
// @Summary      The logged-in client's project
// @Tags         projects
// @Produce      json
// @Success      200  {object}  domain.Project
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/project [get]
func (h *ProjectHandler) MyProject(c echo.Context) error {
	project, err := h.service.MyProject(c.Request().Context(), CurrentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Tasks handles GET /v1/projects/:id/tasks.
//
// @Summary      Project timeline
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/tasks [get]
func (h *ProjectHandler) Tasks(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.service.ListTasks(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	tasks := list.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(http.StatusOK, taskListResponse{Tasks: tasks, Completion: list.Completion})
}

// UpdateTask handles PATCH /v1/projects/:id/tasks/:task_id.
//
// @Summary      Update task progress
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Project id"
// @Param        task_id  path      int                true  "Task id"
// @Param        body     body      updateTaskRequest  true  "Progress and comments"
// @Success      200      {object}  domain.Task
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/projects/{id}/tasks/{task_id} [patch]
func (h *ProjectHandler) UpdateTask(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), CurrentSession(c), projectID, taskID, ports.UpdateTaskInput{
		ProgressPercent: *req.ProgressPercent,
		Comments:        req.Comments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /v1/projects/:id/tasks.
//
// @Summary      Add a task to the timeline
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Project id"
// @Param        body  body      createTaskRequest  true  "Task title and description"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/tasks [post]
func (h *ProjectHandler) CreateTask(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), CurrentSession(c), projectID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// DeleteTask handles DELETE /v1/projects/:id/tasks/:task_id.
//
// @Summary      Remove a task
// @Tags         tasks
// @Param        id       path  int  true  "Project id"
// @Param        task_id  path  int  true  "Task id"
// @Success      204
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /v1/projects/{id}/tasks/{task_id} [delete]
func (h *ProjectHandler) DeleteTask(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "task_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTask(c.Request().Context(), CurrentSession(c), projectID, taskID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Budget handles GET /v1/projects/:id/budget.
//
// @Summary      Project budget and statistics
// @Tags         budget
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  budgetResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/budget [get]
func (h *ProjectHandler) Budget(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	report, err := h.service.Budget(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	items := report.Items
	if items == nil {
		items = []domain.BudgetItem{}
	}
	return c.JSON(http.StatusOK, budgetResponse{Items: items, Summary: report.Summary})
}

// UpdateBudgetItem handles PATCH /v1/projects/:id/budget/:item_id.
//
// @Summary      Update budget item costs
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Project id"
// @Param        item_id  path      int                      true  "Budget item id"
// @Param        body     body      updateBudgetItemRequest  true  "Costs in minor units"
// @Success      200      {object}  domain.BudgetItem
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/projects/{id}/budget/{item_id} [patch]
func (h *ProjectHandler) UpdateBudgetItem(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	var req updateBudgetItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	item, err := h.service.UpdateBudgetItem(c.Request().Context(), CurrentSession(c), projectID, itemID, ports.UpdateBudgetItemInput{
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// CreateBudgetItem handles POST /v1/projects/:id/budget.
//
// @Summary      Add a budget item
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Project id"
// @Param        body  body      createBudgetItemRequest  true  "Item name and costs in minor units"
// @Success      201   {object}  domain.BudgetItem
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/budget [post]
func (h *ProjectHandler) CreateBudgetItem(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createBudgetItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.CreateBudgetItem(c.Request().Context(), CurrentSession(c), projectID, ports.CreateBudgetItemInput{
		ItemName:      req.ItemName,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// DeleteBudgetItem handles DELETE /v1/projects/:id/budget/:item_id.
//
// @Summary      Remove a budget item
// @Tags         budget
// @Param        id       path  int  true  "Project id"
// @Param        item_id  path  int  true  "Budget item id"
// @Success      204
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /v1/projects/{id}/budget/{item_id} [delete]
func (h *ProjectHandler) DeleteBudgetItem(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteBudgetItem(c.Request().Context(), CurrentSession(c), projectID, itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BudgetPDF handles GET /v1/projects/:id/budget.pdf.
//
// @Summary      Budget statement as PDF
// @Tags         budget
// @Produce      application/pdf
// @Param        id   path  int  true  "Project id"
// @Success      200  {file}  binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/budget.pdf [get]
func (h *ProjectHandler) BudgetPDF(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	start := time.Now()
	pdf, err := h.service.BudgetPDF(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	metrics.BudgetPDFDuration.Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="budget_project_`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

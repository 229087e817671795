package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// dateLayout is the calendar-day format of milestone deadlines.
const dateLayout = "2006-01-02"

type createMilestoneRequest struct {
	Milestone string                 `json:"milestone" validate:"required"`
	Deadline  string                 `json:"deadline" validate:"required"`
	Status    domain.MilestoneStatus `json:"status"`
}

type updateMilestoneRequest struct {
	Milestone *string                 `json:"milestone"`
	Deadline  *string                 `json:"deadline"`
	Status    *domain.MilestoneStatus `json:"status"`
}

type timelineResponse struct {
	Milestones []domain.Milestone     `json:"milestones"`
	Summary    domain.TimelineSummary `json:"summary"`
}

func parseDeadline(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "deadline must be YYYY-MM-DD")
	}
	return t, nil
}

// Timeline handles GET /v1/projects/:id/timeline.
//
// @Summary      Project milestones by deadline
// @Tags         timeline
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  timelineResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/timeline [get]
func (h *ProjectHandler) Timeline(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	timeline, err := h.service.Timeline(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	milestones := timeline.Milestones
	if milestones == nil {
		milestones = []domain.Milestone{}
	}
	return c.JSON(http.StatusOK, timelineResponse{Milestones: milestones, Summary: timeline.Summary})
}

// CreateMilestone handles POST /v1/projects/:id/timeline.
//
// @Summary      Add a milestone
// @Tags         timeline
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Project id"
// @Param        body  body      createMilestoneRequest  true  "Milestone, deadline (YYYY-MM-DD) and status"
// @Success      201   {object}  domain.Milestone
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/timeline [post]
func (h *ProjectHandler) CreateMilestone(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return err
	}

	m, err := h.service.CreateMilestone(c.Request().Context(), CurrentSession(c), projectID, ports.CreateMilestoneInput{
		Name:     req.Milestone,
		Deadline: deadline,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMilestone handles PATCH /v1/projects/:id/timeline/:milestone_id.
//
// @Summary      Update a milestone
// @Tags         timeline
// @Accept       json
// @Produce      json
// @Param        id            path      int                     true  "Project id"
// @Param        milestone_id  path      int                     true  "Milestone id"
// @Param        body          body      updateMilestoneRequest  true  "Fields to change"
// @Success      200           {object}  domain.Milestone
// @Failure      400           {object}  map[string]string
// @Failure      404           {object}  map[string]string
// @Failure      422           {object}  map[string]string
// @Router       /v1/projects/{id}/timeline/{milestone_id} [patch]
func (h *ProjectHandler) UpdateMilestone(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	milestoneID, err := pathID(c, "milestone_id")
	if err != nil {
		return err
	}

	var req updateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	in := ports.UpdateMilestoneInput{Name: req.Milestone, Status: req.Status}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return err
		}
		in.Deadline = &deadline
	}

	m, err := h.service.UpdateMilestone(c.Request().Context(), CurrentSession(c), projectID, milestoneID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMilestone handles DELETE /v1/projects/:id/timeline/:milestone_id.
//
// @Summary      Remove a milestone
// @Tags         timeline
// @Param        id            path  int  true  "Project id"
// @Param        milestone_id  path  int  true  "Milestone id"
// @Success      204
// @Failure      403           {object}  map[string]string
// @Failure      404           {object}  map[string]string
// @Router       /v1/projects/{id}/timeline/{milestone_id} [delete]
func (h *ProjectHandler) DeleteMilestone(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	milestoneID, err := pathID(c, "milestone_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteMilestone(c.Request().Context(), CurrentSession(c), projectID, milestoneID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

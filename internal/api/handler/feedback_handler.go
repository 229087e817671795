package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/metrics"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

type submitFeedbackRequest struct {
	ItemType       domain.FeedbackItem   `json:"item_type" validate:"required"`
	Comment        string                `json:"comment" validate:"required"`
	ApprovalStatus domain.ApprovalStatus `json:"approval_status"`
}

type setApprovalRequest struct {
	ApprovalStatus domain.ApprovalStatus `json:"approval_status" validate:"required"`
}

type feedbackResponse struct {
	Feedback []domain.Feedback      `json:"feedback"`
	Summary  domain.ApprovalSummary `json:"summary"`
}

// Feedback handles GET /v1/projects/:id/feedback.
//
// @Summary      Client feedback, newest first
// @Tags         feedback
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  feedbackResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/feedback [get]
func (h *ProjectHandler) Feedback(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.service.Feedback(c.Request().Context(), CurrentSession(c), id)
	if err != nil {
		return err
	}
	items := list.Items
	if items == nil {
		items = []domain.Feedback{}
	}
	return c.JSON(http.StatusOK, feedbackResponse{Feedback: items, Summary: list.Summary})
}

// SubmitFeedback handles POST /v1/projects/:id/feedback.
//
// @Summary      Submit feedback on a drawing or image
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Project id"
// @Param        body  body      submitFeedbackRequest  true  "Item type, comment and verdict"
// @Success      201   {object}  domain.Feedback
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/feedback [post]
func (h *ProjectHandler) SubmitFeedback(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.service.SubmitFeedback(c.Request().Context(), CurrentSession(c), projectID, ports.SubmitFeedbackInput{
		ItemType:       req.ItemType,
		Comment:        req.Comment,
		ApprovalStatus: req.ApprovalStatus,
	})
	if err != nil {
		return err
	}
	metrics.FeedbackTotal.WithLabelValues(string(fb.ApprovalStatus)).Inc()

	return c.JSON(http.StatusCreated, fb)
}

// SetApproval handles PATCH /v1/projects/:id/feedback/:feedback_id.
//
// @Summary      Change the verdict on earlier feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id           path      int                 true  "Project id"
// @Param        feedback_id  path      int                 true  "Feedback id"
// @Param        body         body      setApprovalRequest  true  "approved, pending or rejected"
// @Success      200          {object}  domain.Feedback
// @Failure      400          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Failure      422          {object}  map[string]string
// @Router       /v1/projects/{id}/feedback/{feedback_id} [patch]
func (h *ProjectHandler) SetApproval(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	feedbackID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}

	var req setApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.service.SetApproval(c.Request().Context(), CurrentSession(c), projectID, feedbackID, req.ApprovalStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fb)
}

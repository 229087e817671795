package handler

import (
	"mime"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/metrics"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

type uploadResponse struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type fileEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type fileListResponse struct {
	Kind  domain.FileKind `json:"kind"`
	Files []fileEntry     `json:"files"`
}

// UploadFile handles POST /v1/projects/:id/files/:kind.
//
// @Summary      Upload a project file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int     true  "Project id"
// @Param        kind  path      string  true  "reference, drawing, gallery or whiteboard"
// @Param        file  formData  file    true  "File to store"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      413   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/files/{kind} [post]
func (h *ProjectHandler) UploadFile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	kind := domain.FileKind(c.Param("kind"))

	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	stored, err := h.service.UploadFile(c.Request().Context(), CurrentSession(c), id, kind, header.Filename, src)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues(string(kind)).Inc()

	return c.JSON(http.StatusCreated, uploadResponse{Path: stored, Name: path.Base(stored)})
}

// ListFiles handles GET /v1/projects/:id/files/:kind.
//
// @Summary      List project files of one kind
// @Tags         files
// @Produce      json
// @Param        id    path      int     true  "Project id"
// @Param        kind  path      string  true  "reference, drawing, gallery or whiteboard"
// @Success      200   {object}  fileListResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/files/{kind} [get]
func (h *ProjectHandler) ListFiles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	kind := domain.FileKind(c.Param("kind"))

	paths, err := h.service.ListFiles(c.Request().Context(), CurrentSession(c), id, kind)
	if err != nil {
		return err
	}
	files := make([]fileEntry, 0, len(paths))
	for _, p := range paths {
		files = append(files, fileEntry{Name: path.Base(p), Path: p})
	}
	return c.JSON(http.StatusOK, fileListResponse{Kind: kind, Files: files})
}

// DownloadFile handles GET /v1/projects/:id/files/:kind/:name.
//
// @Summary      Download one project file
// @Tags         files
// @Produce      octet-stream
// @Param        id    path  int     true  "Project id"
// @Param        kind  path  string  true  "reference, drawing, gallery or whiteboard"
// @Param        name  path  string  true  "Stored file name as listed"
// @Success      200   {file}    binary
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/files/{kind}/{name} [get]
func (h *ProjectHandler) DownloadFile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	kind := domain.FileKind(c.Param("kind"))

	file, err := h.service.ReadFile(c.Request().Context(), CurrentSession(c), id, kind, c.Param("name"))
	if err != nil {
		return err
	}

	ctype := mime.TypeByExtension(path.Ext(file.Name))
	if ctype == "" {
		ctype = http.DetectContentType(file.Content)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("inline", map[string]string{"filename": file.Name}))
	return c.Blob(http.StatusOK, ctype, file.Content)
}

// DeleteFile handles DELETE /v1/projects/:id/files/:kind/:name.
//
// @Summary      Delete one project file
// @Tags         files
// @Param        id    path  int     true  "Project id"
// @Param        kind  path  string  true  "reference, drawing, gallery or whiteboard"
// @Param        name  path  string  true  "Stored file name as listed"
// @Success      204
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/files/{kind}/{name} [delete]
func (h *ProjectHandler) DeleteFile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	kind := domain.FileKind(c.Param("kind"))

	if err := h.service.DeleteFile(c.Request().Context(), CurrentSession(c), id, kind, c.Param("name")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

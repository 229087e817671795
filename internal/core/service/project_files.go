package service

import (
	"context"
	"io"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

// UploadFile stores a designer upload in the project's kind directory.
func (s *ProjectService) UploadFile(ctx context.Context, sess *domain.Session, projectID int64, kind domain.FileKind, name string, content io.Reader) (string, error) {
	if err := requireDesigner(sess); err != nil {
		return "", err
	}
	if !kind.Valid() {
		return "", domain.ErrInvalidFileKind
	}
	if !kind.Allows(name) {
		return "", domain.ErrInvalidFileType
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return "", err
	}

	path, err := s.files.SaveFile(ctx, projectID, kind, name, content)
	if err != nil {
		s.logger.Error().Err(err).Int64("project_id", projectID).Str("kind", string(kind)).Msg("failed to store upload")
		return "", err
	}
	return path, nil
}

func (s *ProjectService) ListFiles(ctx context.Context, sess *domain.Session, projectID int64, kind domain.FileKind) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidFileKind
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	return s.files.ListFiles(ctx, projectID, kind)
}

// ReadFile returns one stored upload to a designer or client of the project.
func (s *ProjectService) ReadFile(ctx context.Context, sess *domain.Session, projectID int64, kind domain.FileKind, name string) (*ports.StoredFile, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidFileKind
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return nil, err
	}
	content, err := s.files.ReadFile(ctx, projectID, kind, name)
	if err != nil {
		return nil, err
	}
	return &ports.StoredFile{Name: name, Content: content}, nil
}

func (s *ProjectService) DeleteFile(ctx context.Context, sess *domain.Session, projectID int64, kind domain.FileKind, name string) error {
	if err := requireDesigner(sess); err != nil {
		return err
	}
	if !kind.Valid() {
		return domain.ErrInvalidFileKind
	}
	if _, err := s.visible(ctx, sess, projectID); err != nil {
		return err
	}
	if err := s.files.DeleteFile(ctx, projectID, kind, name); err != nil {
		return err
	}
	s.logger.Info().Int64("project_id", projectID).Str("kind", string(kind)).Str("file", name).Msg("file deleted")
	return nil
}

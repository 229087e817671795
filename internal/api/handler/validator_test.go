package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	ClientName string `json:"client_name" validate:"required"`
	Progress   *int   `json:"progress_percent" validate:"required,gte=0,lte=100"`
	Internal   string `validate:"max=3"`
}

func TestValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Internal: "toolong"})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	want := "client_name is required; progress_percent is required; Internal must be at most 3"
	if he.Message != want {
		t.Fatalf("unexpected message %q", he.Message)
	}
}

func TestValidator_Bounds(t *testing.T) {
	v := NewValidator()
	over := 101

	err := v.Validate(&sampleRequest{ClientName: "Ann", Progress: &over})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Message != "progress_percent must be at most 100" {
		t.Fatalf("unexpected error %v", err)
	}

	ok := 40
	if err := v.Validate(&sampleRequest{ClientName: "Ann", Progress: &ok}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

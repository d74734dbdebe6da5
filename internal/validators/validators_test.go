package validators

import (
	"net/http"
	"testing"

	"github.com/inko-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("accepts a valid request", func(t *testing.T) {
		req := models.SignupRequest{Username: "alice", Password: "secret1"}
		if err := v.Validate(&req); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("rejects a short username with 400", func(t *testing.T) {
		req := models.SignupRequest{Username: "ab", Password: "secret1"}
		err := v.Validate(&req)
		if err == nil {
			t.Fatal("Validate() error = nil, want failure")
		}
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("error type = %T, want *echo.HTTPError", err)
		}
		if httpErr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", httpErr.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects an out-of-range media type", func(t *testing.T) {
		req := models.CreatePostRequest{File: "aGVsbG8=", MediaType: "audio"}
		if err := v.Validate(&req); err == nil {
			t.Error("Validate() error = nil, want failure")
		}
	})
}

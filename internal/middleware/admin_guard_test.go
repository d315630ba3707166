package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestAdminGuard(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		setRole    bool
		wantStatus int
	}{
		{"admin passes", "admin", true, http.StatusOK},
		{"mahasiswa blocked", "mahasiswa", true, http.StatusForbidden},
		{"missing role blocked", "", false, http.StatusForbidden},
	}

	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.setRole {
				c.Set("role", tt.role)
			}

			require.NoError(t, AdminGuard(next)(c))
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				require.True(t, strings.Contains(rec.Body.String(), "FORBIDDEN"))
			}
		})
	}
}

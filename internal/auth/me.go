package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmirsal/binershare/internal/db"
)

// Me returns the currently authenticated user's profile
func Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var id, nama, email, role string
	var bio *string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT id, nama, email, role, bio FROM profiles WHERE id = $1`, userID).
		Scan(&id, &nama, &email, &role, &bio)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "profil tidak ditemukan"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":    id,
		"nama":  nama,
		"email": email,
		"role":  role,
		"bio":   bio,
	})
}

package auth

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/lmirsal/binershare/internal/db"
)

type SignupRequest struct {
	Nama     string `json:"nama" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Bio      string `json:"bio"`
}

type SignupResponse struct {
	Token string `json:"token"`
}

// ===== Signup =====
func Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Nama == "" || req.Email == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nama, email dan password (min 6 karakter) wajib diisi"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ctx := context.Background()

	var profileID string
	err = db.Conn.QueryRow(ctx, `
		INSERT INTO profiles (id, nama, email, password, bio, role)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 'mahasiswa')
		RETURNING id
	`, uuid.New().String(), req.Nama, req.Email, string(hashed), req.Bio).Scan(&profileID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email sudah terdaftar"})
	}

	signed, err := mintToken(profileID, "mahasiswa")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, SignupResponse{Token: signed})
}

func mintToken(profileID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": profileID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

package handler

import (
	"net/http"
	"time"

	"gameshop/internal/config"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 管理者トークンの発行窓口
type TokenIssuer interface {
	Issue(subject string, role string, now time.Time) (string, time.Time, error)
}

// /admin/login のHTTP
type AdminAuthHandler struct {
	cfg    config.Config
	issuer TokenIssuer
}

// DI
func NewAdminAuthHandler(cfg config.Config, issuer TokenIssuer) *AdminAuthHandler {
	return &AdminAuthHandler{cfg: cfg, issuer: issuer}
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AdminAuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/admin/login", h.login)
}

func (h *AdminAuthHandler) login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//bcryptでパスワード照合
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	token, expiresAt, err := h.issuer.Issue("admin", "ADMIN", time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, AdminLoginResponse{Token: token, ExpiresAt: expiresAt})
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"jobfair/internal/middleware"
	"jobfair/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. The session token is written
// to cookieName.
func NewAuthHandler(authService service.AuthService, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// LoginRequest represents a user login request. NameOrEmail may hold either
// the user name or the email.
type LoginRequest struct {
	NameOrEmail string `json:"nameOrEmail" form:"nameOrEmail"`
	Password    string `json:"password" form:"password"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RoleResponse carries the caller's role.
type RoleResponse struct {
	Role string `json:"role"`
}

// Login godoc
// @Summary Login user
// @Description Accepts a user name or an email. The token is also set as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.NameOrEmail), req.Password)
	if err != nil {
		return err
	}

	ttl := h.authService.TokenTTL()
	c.SetCookie(h.cookie(token, int(ttl/time.Second), time.Now().Add(ttl)))
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes every token issued to the caller so far and clears the session cookie. Succeeds without a session.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), h.tokenFrom(c)); err != nil {
		return err
	}

	expired := time.Unix(0, 0)
	c.SetCookie(h.cookie("", -1, expired))
	if h.cookieName != middleware.LegacyCookieName {
		legacy := h.cookie("", -1, expired)
		legacy.Name = middleware.LegacyCookieName
		c.SetCookie(legacy)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Sesión cerrada correctamente."})
}

// Role godoc
// @Summary Get the caller's role
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RoleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/role [get]
func (h *AuthHandler) Role(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoleResponse{Role: string(id.Role)})
}

// tokenFrom reads the session token the same way the gate does.
func (h *AuthHandler) tokenFrom(c echo.Context) string {
	for _, name := range []string{h.cookieName, middleware.LegacyCookieName} {
		if ck, err := c.Cookie(name); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	if v := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(v, "Bearer ") {
		return strings.TrimPrefix(v, "Bearer ")
	}
	return ""
}

func (h *AuthHandler) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partsgarage/inventory-api/internal/config"
	"github.com/partsgarage/inventory-api/internal/i18n"
	"github.com/partsgarage/inventory-api/internal/middleware"
	"github.com/partsgarage/inventory-api/internal/service"
	"github.com/partsgarage/inventory-api/internal/session"
)

// AuthHandler bundles dependencies for the register/login/logout
// endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *service.UserService
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, users *service.UserService, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// ----- DTOs -----

type registerReq struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     uint8  `json:"role"`
}
type authResp struct {
	User    userPart    `json:"user"`
	Session sessionPart `json:"session"`
}

// setSessionCookie mirrors the session record onto the transport: the
// cookie carries the token and expires together with it.
func (h *AuthHandler) setSessionCookie(c echo.Context, s session.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates a user and opens a session immediately, so a fresh
// account is signed in without a second round trip.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang(c), i18n.MsgInvalidInput)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Register(ctx, req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		return writeDomainError(c, err)
	}

	s, err := h.Sessions.Create(ctx, u.Username, time.Duration(h.Cfg.SessionTTLMin)*time.Minute)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.setSessionCookie(c, s)

	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: u.ID, Username: u.Username, Role: uint8(u.RoleID)},
		Session: sessionPart{Token: s.ID, Expires: s.ExpiresAt},
	})
}

// Login verifies credentials and opens a session. Unknown usernames
// and wrong passwords produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang(c), i18n.MsgInvalidInput)})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang(c), i18n.MsgInvalidInput)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Users.ValidateLogin(ctx, req.Username, req.Password)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": i18n.T(lang(c), i18n.MsgLoginFailed)})
	}

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		return writeDomainError(c, err)
	}

	s, err := h.Sessions.Create(ctx, u.Username, time.Duration(h.Cfg.SessionTTLMin)*time.Minute)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.setSessionCookie(c, s)

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Username: u.Username, Role: uint8(u.RoleID)},
		Session: sessionPart{Token: s.ID, Expires: s.ExpiresAt},
	})
}

// Logout deletes the presented session. Deleting an absent or already
// expired token succeeds all the same; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.TokenFromRequest(c)
	if token != "" {
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := h.Sessions.Delete(ctx, token); err != nil {
			return writeDomainError(c, err)
		}
	}
	// Expire the cookie client-side as well.
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": i18n.T(lang(c), i18n.MsgLoggedOut)})
}

// Me reports the authenticated identity and role resolved by the
// session middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	id := middleware.Identity(c)
	return c.JSON(http.StatusOK, echo.Map{
		"username": id.Username,
		"role":     uint8(middleware.Role(c)),
	})
}

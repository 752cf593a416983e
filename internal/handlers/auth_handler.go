package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/config"
	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

// AuthHandler handles registration, login, logout, and the identity probe.
type AuthHandler struct {
	users    services.UserServicer
	sessions services.SessionServicer
	cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServicer, sessions services.SessionServicer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required"`
	LastName  string `json:"lastName" form:"lastName" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email_shape"`
	Password  string `json:"password" form:"password" binding:"required,min=6"`
	IsStudent bool   `json:"isStudent" form:"isStudent"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email_shape"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse is the data payload of a successful login.
type LoginResponse struct {
	Identity  models.Identity `json:"identity"`
	CSRFToken string          `json:"csrfToken"`
}

// Register handles user registration
// @Summary     Register a new account
// @Description Register a new user with name, email, and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Registration data"
// @Success     201 {object} map[string]interface{} "Account created"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.users.Register(services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsStudent: req.IsStudent,
	}); err != nil {
		respondWithError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Registration successful")
}

// Login handles user login
// @Summary     Log in
// @Description Verify credentials, rotate the session, and set the session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} LoginResponse "Identity and CSRF token"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Rotate the session identifier: whatever session the cookie pointed at
	// before login must not survive authentication (session fixation).
	if old, err := c.Cookie(h.cfg.SessionCookieName); err == nil {
		_ = h.sessions.Destroy(old)
	}

	session, err := h.sessions.Issue(user.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Browser-session cookie; the server-side row carries the real TTL.
	c.SetCookie(h.cfg.SessionCookieName, session.Token, 0, "/", "", h.cfg.CookieSecure, true)

	respondData(c, http.StatusOK, LoginResponse{
		Identity:  models.NewIdentity(user),
		CSRFToken: session.CSRFToken,
	})
}

// Logout handles user logout
// @Summary     Log out
// @Description Destroy the server-side session and expire the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]interface{} "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.SessionCookieName); err == nil {
		if err := h.sessions.Destroy(token); err != nil {
			respondWithError(c, err)
			return
		}
	}

	// Expire the cookie explicitly with the same attributes it was set
	// with, so clients cannot keep presenting it.
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.cfg.CookieSecure,
		HttpOnly: true,
	})

	respondMessage(c, http.StatusOK, "Logged out")
}

// Me returns the authenticated identity
// @Summary     Current identity
// @Description Return the minimal profile of the logged-in user
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.Identity "Identity"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, identity)
}

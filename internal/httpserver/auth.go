package httpserver

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"shopswift/internal/domain"
	"shopswift/internal/service/session"
	"shopswift/internal/store/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type meResponse struct {
	State   string       `json:"state"`
	User    *domain.User `json:"user"`
	IsAdmin bool         `json:"isAdmin"`
}

func toMeResponse(sess *session.Session) meResponse {
	return meResponse{
		State:   sess.Auth.State().String(),
		User:    sess.Auth.CurrentUser(),
		IsAdmin: sess.Auth.IsAdmin(),
	}
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		writeError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}
	sess := sessionFrom(c)
	if !sess.Auth.Login(c.Request.Context(), req.Email, req.Password) {
		writeError(c, http.StatusUnauthorized, "Invalid email or password. Please try again.")
		return
	}
	c.JSON(http.StatusOK, toMeResponse(sess))
}

func (h *handlers) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch {
	case strings.TrimSpace(req.Email) == "" || req.Password == "":
		writeError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	case req.ConfirmPassword != "" && req.ConfirmPassword != req.Password:
		writeError(c, http.StatusBadRequest, "Passwords do not match")
		return
	case utf8.RuneCountInString(req.Password) < auth.MinPasswordLength:
		writeError(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}
	sess := sessionFrom(c)
	if !sess.Auth.Signup(c.Request.Context(), req.Email, req.Password) {
		writeError(c, http.StatusBadRequest, "Failed to create account. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, toMeResponse(sess))
}

func (h *handlers) logout(c *gin.Context) {
	sessionFrom(c).Auth.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, toMeResponse(sessionFrom(c)))
}

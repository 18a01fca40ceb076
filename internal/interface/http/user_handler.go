package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dreyes/auth-service/config"
	userapp "github.com/dreyes/auth-service/internal/application"
	"github.com/dreyes/auth-service/pkg/policy"
	"github.com/dreyes/auth-service/pkg/response"
	"github.com/dreyes/auth-service/pkg/token"
	"github.com/dreyes/auth-service/pkg/validation"
)

type UserHandler struct {
	Svc       *userapp.Service
	Auth      userapp.Authenticator
	LoginMode string
	Logger    *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, auth userapp.Authenticator, loginMode string, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Auth: auth, LoginMode: loginMode, Logger: logger}
}

type signUpRequest struct {
	Name     string               `json:"name" binding:"required"`
	Email    string               `json:"email" binding:"required,usermail"`
	Password string               `json:"password" binding:"required,userpwd"`
	Phones   []userapp.PhoneInput `json:"phones" binding:"omitempty,dive"`
}

type tokenLoginRequest struct {
	Token string `json:"token"`
}

type credentialsLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.SignUp(c.Request.Context(), userapp.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   req.Phones,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login re-authenticates a user. In token mode the bearer token is read
// from the Authorization header or a {token} body (header wins); in
// credentials mode the body carries {email, password}.
func (h *UserHandler) Login(c *gin.Context) {
	var cred userapp.Credentials

	if h.LoginMode == config.LoginModeCredentials {
		var req credentialsLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, validation.ToDetails(err))
			return
		}
		cred.Email = req.Email
		cred.Password = req.Password
	} else {
		cred.Token = bearerToken(c)
		if cred.Token == "" {
			var req tokenLoginRequest
			// Body is optional when the header is present, so a bind
			// failure only matters if it leaves us without a token.
			_ = c.ShouldBindJSON(&req)
			cred.Token = req.Token
		}
		if cred.Token == "" {
			response.Error(c, http.StatusBadRequest, "token is required")
			return
		}
	}

	res, err := h.Auth.Login(c.Request.Context(), cred)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Search queries the user index.
func (h *UserHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required")
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, 10)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits})
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	if t, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(auth)
}

// writeError maps domain errors onto the boundary contract. Anything not
// recognized is a 500 with a generic detail; the cause stays in the logs.
func (h *UserHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrEmailRequired),
		errors.Is(err, policy.ErrInvalidEmail),
		errors.Is(err, policy.ErrInvalidPassword),
		errors.Is(err, userapp.ErrUserAlreadyExists),
		errors.Is(err, token.ErrMalformedToken),
		errors.Is(err, token.ErrExpiredToken),
		errors.Is(err, token.ErrInvalidToken):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("request failed")
		}
		response.Internal(c)
	}
}

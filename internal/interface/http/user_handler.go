package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/api/internal/application"
	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/pkg/response"
	"github.com/yourplaces/api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GetUsers GET /api/users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "could not fetch users", nil)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	response.Success(c, http.StatusOK, gin.H{"users": out}, "users")
}

// Signup POST /api/users/signup (multipart: name, email, password, image)
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", validation.ToDetails(err))
		return
	}

	avatar, closeFn, err := formImage(c, "image")
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", map[string]string{"image": "is required"})
		return
	}
	defer closeFn()

	sess, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password, avatar)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusUnprocessableEntity, "user exists already, please login instead", nil)
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "signing up failed, please try again later", nil)
		return
	}
	response.Success(c, http.StatusCreated, sess, "signed up")
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "logging in failed, please try again later", nil)
		return
	}
	response.Success(c, http.StatusOK, sess, "logged in")
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"image":      u.ImageURL,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

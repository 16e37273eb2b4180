// Package users manages user records.
package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/plenumwatch/core/internal/models"
	"github.com/plenumwatch/core/internal/pkg/response"
	"github.com/plenumwatch/core/internal/store"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type Service struct {
	users  store.UserStore
	logger *zap.Logger
}

func NewService(users store.UserStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger.Named("UserService")}
}

func (s *Service) CreateUser(email, name string) (*models.UserModel, error) {
	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	user := models.UserModel{Email: email, Name: name}
	if err := s.users.CreateUser(&user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("id", user.ID), zap.String("email", user.Email))
	return &user, nil
}

func (s *Service) GetUser(id string) (*models.UserModel, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

type CreateUserDTO struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.svc.CreateUser(dto.Email, dto.Name)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.svc.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

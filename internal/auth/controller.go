package auth

import (
	"errors"
	"net/http"

	"github.com/brianstm/kevii-gym-booking-app/internal/shared/middleware"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/utils/response"
	"github.com/brianstm/kevii-gym-booking-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
	logger    *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		logger:    logger.GetDefault(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(ctx, http.StatusConflict, "User with this email already exists")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.logger.LogAuthSuccess(ctx.Request.Context(), resp.User.ID)
	ctx.JSON(http.StatusCreated, resp)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.logger.LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.logger.LogAuthSuccess(ctx.Request.Context(), resp.User.ID)
	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	me, err := c.service.Me(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(ctx, http.StatusNotFound, "User not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	ctx.JSON(http.StatusOK, me)
}

package bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brianstm/kevii-gym-booking-app/internal/shared/middleware"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/utils/response"
	"github.com/brianstm/kevii-gym-booking-app/internal/timegrid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// WeekCount serves the occupancy snapshot as a plain nested mapping, the
// shape the grid consumes directly.
func (c *Controller) WeekCount(ctx *gin.Context) {
	var query WeekCountQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if err := c.validator.Struct(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "date is required")
		return
	}

	ref, err := time.Parse(timegrid.DateLayout, query.Date)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return
	}

	matrix, err := c.service.WeekCount(ctx.Request.Context(), ref, query.StartTime, query.EndTime)
	if err != nil {
		if errors.Is(err, timegrid.ErrInvalidTime) || errors.Is(err, timegrid.ErrInvertedWindow) {
			response.Error(ctx, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to load availability")
		return
	}

	ctx.JSON(http.StatusOK, matrix)
}

// CreateBooking handles the reservation write. Returns 201 on success; all
// failures carry an error field the client surfaces verbatim.
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "date and a positive duration are required")
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotFull):
			response.Error(ctx, http.StatusConflict, "Slot is already fully booked")
		case errors.Is(err, ErrDailyLimit):
			response.Error(ctx, http.StatusConflict, "You already have a booking on this day")
		case errors.Is(err, ErrOffGrid), errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrBadInstant):
			response.Error(ctx, http.StatusBadRequest, err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	ctx.JSON(http.StatusCreated, booking.ToResponse())
}

// GetUserBookings lists the caller's bookings, newest first.
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	list, err := c.service.GetUserBookings(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to load bookings")
		return
	}

	resp := make([]BookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, list[i].ToResponse())
	}
	ctx.JSON(http.StatusOK, resp)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.UserID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package api

import (
	"errors"
	"net/http"

	reqdto "room-reservation-api/internal/handler/dto/request"
	resdto "room-reservation-api/internal/handler/dto/response"
	"room-reservation-api/internal/handler/httperr"
	"room-reservation-api/internal/handler/middleware"
	"room-reservation-api/internal/pkg/errs"
	"room-reservation-api/internal/usecase/commands"
	"room-reservation-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{commands: cmds, queries: qs}
}

// @Summary Create reservation
// @Description Book a room for a stay; the reservation starts out pending payment
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.commands.CreateReservation(c.Request.Context(), commands.CreateReservationParams{
		UserID:   userID,
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrRoomUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Room is not available for the selected dates", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid reservation details", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	view, err := h.queries.GetReservation(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get user reservations
// @Description Get all reservations for the current user; admins may pass userId to read another user's
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Target user ID (admin only)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal error", nil)
		return
	}

	var (
		views []*queries.ReservationView
		err   error
	)
	if raw := c.Query("userId"); raw != "" {
		targetID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid user ID", nil)
			return
		}
		views, err = h.queries.ListUserReservations(c.Request.Context(), targetID, userID, middleware.IsAdmin(c))
	} else {
		views, err = h.queries.ListMyReservations(c.Request.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, queries.ErrForbidden) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Cancel reservation
// @Description Cancel a reservation; allowed up to 24 hours before check-in
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation details"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	err = h.commands.CancelReservation(c.Request.Context(), commands.CancelReservationParams{
		ReservationID: id,
		CallerID:      userID,
		IsAdmin:       middleware.IsAdmin(c),
		Reason:        req.GetReason(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
		case errors.Is(err, commands.ErrCancellationNotAllowed):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation cannot be cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	view, err := h.queries.GetReservation(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

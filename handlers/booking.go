package handlers

import (
	"context"
	"net/http"

	"courtbook/middleware"
	"courtbook/models"
	"courtbook/services/booking"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingWorkflow is the booking attempt state machine.
type BookingWorkflow interface {
	Start(ctx context.Context, sess *models.Session, courtID, slot string) (*models.BookingAttempt, error)
	Get(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error)
	RequestBooking(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error)
	ConfirmPayment(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error)
	BookingStatus(ctx context.Context, sess *models.Session, bookingID string) (*booking.StatusReport, error)
}

// BookingManager lists and cancels the signed-in user's bookings.
type BookingManager interface {
	ListBookings(ctx context.Context, sess *models.Session) ([]booking.BookingView, error)
	Cancel(ctx context.Context, sess *models.Session, bookingID, courtID string) ([]booking.BookingView, error)
}

// BookingHandler serves the booking page and the profile booking list.
type BookingHandler struct {
	Workflow BookingWorkflow
	Manager  BookingManager
}

func NewBookingHandler(workflow BookingWorkflow, manager BookingManager) *BookingHandler {
	return &BookingHandler{Workflow: workflow, Manager: manager}
}

type startWorkflowRequest struct {
	CourtID string `json:"courtId"`
	Slot    string `json:"slot"`
}

// StartWorkflowHandler opens a booking attempt for a court and a selected slot.
func (h *BookingHandler) StartWorkflowHandler(c *gin.Context) {
	logger := getLogger(c)

	var req startWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	attempt, err := h.Workflow.Start(c.Request.Context(), middleware.SessionFrom(c), req.CourtID, req.Slot)
	if err != nil {
		if attempt != nil {
			logger.Warn("booking attempt failed to load", zap.String("attemptId", attempt.ID), zap.Error(err))
		}
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// GetWorkflowHandler returns the current state of an attempt.
func (h *BookingHandler) GetWorkflowHandler(c *gin.Context) {
	attempt, err := h.Workflow.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// RequestBookingHandler creates the pending booking and returns its payment QR code.
func (h *BookingHandler) RequestBookingHandler(c *gin.Context) {
	attempt, err := h.Workflow.RequestBooking(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// ConfirmPaymentHandler confirms the payment of a pending booking.
func (h *BookingHandler) ConfirmPaymentHandler(c *gin.Context) {
	logger := getLogger(c)

	attempt, err := h.Workflow.ConfirmPayment(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logger.Info("booking confirmed", zap.String("attemptId", attempt.ID), zap.String("bookingId", attempt.BookingID))
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed!", "attempt": attempt, "redirect": "/profile"})
}

// ListBookingsHandler returns the user's bookings, most recent first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	views, err := h.Manager.ListBookings(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// BookingStatusHandler reports the authoritative status of one booking.
func (h *BookingHandler) BookingStatusHandler(c *gin.Context) {
	report, err := h.Workflow.BookingStatus(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type cancelBookingRequest struct {
	CourtID string `json:"courtId"`
}

// CancelBookingHandler cancels a booking and returns the refreshed list.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var req cancelBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}

	bookingID := c.Param("id")
	views, err := h.Manager.Cancel(c.Request.Context(), middleware.SessionFrom(c), bookingID, req.CourtID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logger.Info("booking cancelled", zap.String("bookingId", bookingID))
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "bookings": views})
}

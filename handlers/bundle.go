package handlers

import (
	"courtbook/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions middleware.SessionResolver

	// Slot endpoints
	SlotRulesHandler  gin.HandlerFunc
	SelectSlotHandler gin.HandlerFunc

	// Session endpoints
	LoginHandler    gin.HandlerFunc
	RegisterHandler gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	MeHandler       gin.HandlerFunc

	// Court endpoints
	ListCourtsHandler gin.HandlerFunc
	GetCourtHandler   gin.HandlerFunc

	// Booking workflow endpoints
	StartWorkflowHandler  gin.HandlerFunc
	GetWorkflowHandler    gin.HandlerFunc
	RequestBookingHandler gin.HandlerFunc
	ConfirmPaymentHandler gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	BookingStatusHandler  gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler

	// Storage endpoints; nil when image uploads are not configured.
	StorageHandler *StorageHandler
}

package handlers

import (
	"net/http"

	"courtbook/middleware"
	"courtbook/models"
	"courtbook/services/admin"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	AdminService admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: svc}
}

// GetAllUsersHandler lists every registered user.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.AdminService.ListUsers(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetAllBookingsHandler lists every booking across users.
func (ah *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := ah.AdminService.ListAllBookings(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetAllCourtsHandler lists courts straight from the remote API, bypassing the cache.
func (ah *AdminHandler) GetAllCourtsHandler(c *gin.Context) {
	courts, err := ah.AdminService.ListCourts(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": courts})
}

// AddCourtHandler creates a court and returns the refreshed list.
func (ah *AdminHandler) AddCourtHandler(c *gin.Context) {
	var form models.CourtForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	courts, err := ah.AdminService.AddCourt(c.Request.Context(), middleware.SessionFrom(c), form)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("admin added court", zap.String("name", form.Name))
	c.JSON(http.StatusCreated, gin.H{"message": "Court added", "courts": courts})
}

// UpdateCourtHandler replaces a court's fields and returns the refreshed list.
func (ah *AdminHandler) UpdateCourtHandler(c *gin.Context) {
	var form models.CourtForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	courtID := c.Param("id")
	courts, err := ah.AdminService.UpdateCourt(c.Request.Context(), middleware.SessionFrom(c), courtID, form)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("admin updated court", zap.String("courtId", courtID))
	c.JSON(http.StatusOK, gin.H{"message": "Court updated", "courts": courts})
}

// PrepareDeleteCourtHandler issues the confirmation token for a court deletion.
func (ah *AdminHandler) PrepareDeleteCourtHandler(c *gin.Context) {
	ticket, err := ah.AdminService.PrepareCourtDeletion(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Are you sure you want to delete this court?",
		"ticket":  ticket,
	})
}

type confirmDeleteRequest struct {
	Token string `json:"token"`
}

// ConfirmDeleteCourtHandler deletes the court a token was issued for.
func (ah *AdminHandler) ConfirmDeleteCourtHandler(c *gin.Context) {
	var req confirmDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	courts, err := ah.AdminService.ConfirmCourtDeletion(c.Request.Context(), middleware.SessionFrom(c), req.Token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Court deleted", "courts": courts})
}

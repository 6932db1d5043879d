package handlers

import (
	"net/http"
	"time"

	"courtbook/services/availability"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes the date/time picker rules.
type SlotHandler struct {
	Selector *availability.Selector
	now      func() time.Time
}

func NewSlotHandler(selector *availability.Selector) *SlotHandler {
	return &SlotHandler{Selector: selector, now: time.Now}
}

// RulesHandler returns the hours and minutes the picker must disable.
func (h *SlotHandler) RulesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timezone":        h.Selector.Location().String(),
		"format":          "DD-MM-YYYY HH:mm",
		"disabledHours":   availability.DisabledHours(),
		"disabledMinutes": availability.DisabledMinutes(),
	})
}

type selectSlotRequest struct {
	Slot string `json:"slot"`
}

// SelectHandler validates a picked slot and echoes its canonical form.
func (h *SlotHandler) SelectHandler(c *gin.Context) {
	var req selectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	slot, err := h.Selector.ParseSlot(req.Slot, h.now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slot":    slot.String(),
		"backend": slot.BackendFormat(),
		"display": slot.Display(),
	})
}

package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"courtbook/services/storage"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// StorageHandler uploads court images for the admin court form.
type StorageHandler struct {
	Images storage.ImageStore
}

func NewStorageHandler(images storage.ImageStore) *StorageHandler {
	return &StorageHandler{Images: images}
}

// UploadCourtImageHandler stores one multipart "file" and returns its public URL.
func (h *StorageHandler) UploadCourtImageHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.JSONError(c, http.StatusBadRequest, "file too large", "images must be 5MB or smaller")
		return
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		utils.JSONError(c, http.StatusBadRequest, "unsupported file type", "allowed: jpg, jpeg, png, webp")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read file", err.Error())
		return
	}
	defer file.Close()

	uploaded, err := h.Images.UploadImage(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		utils.RespondError(c, utils.NewAppError(utils.KindNetwork, "failed to upload image", err))
		return
	}

	logger.Info("court image uploaded", zap.String("publicId", uploaded.PublicID))
	c.JSON(http.StatusOK, uploaded)
}

// DeleteCourtImageHandler removes an uploaded image by ?publicId=.
func (h *StorageHandler) DeleteCourtImageHandler(c *gin.Context) {
	publicID := strings.TrimSpace(c.Query("publicId"))
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}
	if err := h.Images.DeleteImage(c.Request.Context(), publicID); err != nil {
		utils.RespondError(c, utils.NewAppError(utils.KindNetwork, "failed to delete image", err))
		return
	}
	getLogger(c).Info("court image deleted", zap.String("publicId", publicID))
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

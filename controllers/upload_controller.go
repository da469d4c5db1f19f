package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taller3d/printshop-api/services"
	"github.com/taller3d/printshop-api/utils"
)

// UploadController serves the design-file attachment endpoints
type UploadController struct {
	store   *services.OrderStore
	storage services.FileStorage
}

// NewUploadController creates the controller. A nil storage disables
// attachments with a NOT_CONFIGURED response instead of failing.
func NewUploadController(store *services.OrderStore, storage services.FileStorage) *UploadController {
	return &UploadController{store: store, storage: storage}
}

// AttachFile handles POST /api/v1/orders/:id/file - uploads the design
// file for a print job and records its key on the order
func (ctl *UploadController) AttachFile(c *gin.Context) {
	if ctl.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_CONFIGURED",
				"message": "File storage is not configured",
			},
		})
		return
	}

	id := c.Param("id")
	if _, err := ctl.store.Get(id); err != nil {
		respondStoreError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A file is required",
			},
		})
		return
	}

	if err := utils.ValidateDesignFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "INVALID_FILE"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	key, err := ctl.storage.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store the design file",
			},
		})
		return
	}

	if err := ctl.store.AttachFile(c.Request.Context(), id, key); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"file_s3_key": key,
		},
	})
}

// GetFile handles GET /api/v1/orders/:id/file - returns a time-limited
// download URL for the order's design file
func (ctl *UploadController) GetFile(c *gin.Context) {
	if ctl.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_CONFIGURED",
				"message": "File storage is not configured",
			},
		})
		return
	}

	order, err := ctl.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if order.FileS3Key == nil || *order.FileS3Key == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "This order has no design file",
			},
		})
		return
	}

	url, err := ctl.storage.GetPresignedURL(*order.FileS3Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to generate the download URL",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"file_url": url,
		},
	})
}

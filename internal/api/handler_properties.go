package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cleaning-coordination-backend/internal/model"
)

type createPropertyRequest struct {
	OwnerID   uuid.UUID `json:"owner_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Address   string    `json:"address"`
	RoomCount int       `json:"room_count" binding:"required,min=1"`
}

// CreateProperty handles POST /api/properties.
func (h *Handler) CreateProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := model.Property{
		ID:        uuid.New(),
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Address:   req.Address,
		RoomCount: req.RoomCount,
	}
	if err := h.store.DB().Create(&property).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, property)
}

// GetProperties handles GET /api/properties.
func (h *Handler) GetProperties(c *gin.Context) {
	var properties []model.Property
	if err := h.store.DB().Order("name ASC").Find(&properties).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty handles GET /api/properties/:property_id.
func (h *Handler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var property model.Property
	if err := h.store.DB().First(&property, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "property not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		}
		return
	}
	c.JSON(http.StatusOK, property)
}

type linenItemRequest struct {
	Item         string `json:"item" binding:"required"`
	BaseQuantity int    `json:"base_quantity" binding:"min=0"`
	PerGuest     int    `json:"per_guest" binding:"min=0"`
}

// PutLinen handles PUT /api/properties/:property_id/linen, replacing the
// property's full linen requirement list.
func (h *Handler) PutLinen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var req []linenItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.store.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&model.LinenRequirement{}).Error; err != nil {
			return err
		}
		for _, item := range req {
			r := model.LinenRequirement{
				ID:           uuid.New(),
				PropertyID:   id,
				Item:         item.Item,
				BaseQuantity: item.BaseQuantity,
				PerGuest:     item.PerGuest,
			}
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLinen handles GET /api/properties/:property_id/linen.
func (h *Handler) GetLinen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var requirements []model.LinenRequirement
	if err := h.store.DB().Where("property_id = ?", id).Order("item ASC").Find(&requirements).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve linen requirements"})
		return
	}
	c.JSON(http.StatusOK, requirements)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-rooms/services"
)

type CategoryController struct {
	Inventory *services.InventoryService
}

func NewCategoryController(inv *services.InventoryService) *CategoryController {
	return &CategoryController{Inventory: inv}
}

// GetCategories (GET /api/categories)
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Inventory.Categories())
}

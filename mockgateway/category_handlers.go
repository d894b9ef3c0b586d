package mockgateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

func (g *Gateway) getCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", g.store.Categories())
}

func (g *Gateway) createCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category name is required"))
		return
	}
	category := g.store.CreateCategory(req)
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (g *Gateway) updateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := g.store.UpdateCategory(c.Param("category_id"), req)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (g *Gateway) deleteCategory(c *gin.Context) {
	err := g.store.DeleteCategory(c.Param("category_id"))
	switch {
	case errors.Is(err, errCategoryInUse):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, errCategoryNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
	}
}

package mockgateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

func (g *Gateway) getMenus(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of menus", g.store.Menus())
}

func (g *Gateway) getMenusByCategory(c *gin.Context) {
	menus := g.store.MenusByCategory(c.Param("category_id"))
	utils.RespondJSON(c, http.StatusOK, "List of menus by category", menus)
}

func (g *Gateway) createMenu(c *gin.Context) {
	var req models.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.CategoryID == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu name and categoryId are required"))
		return
	}
	if req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}
	menu, err := g.store.CreateMenu(req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (g *Gateway) updateMenu(c *gin.Context) {
	var req models.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	menu, err := g.store.UpdateMenu(c.Param("menu_id"), req)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (g *Gateway) deleteMenu(c *gin.Context) {
	if err := g.store.DeleteMenu(c.Param("menu_id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

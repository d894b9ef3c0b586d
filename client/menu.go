package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/restaurant-client/models"
)

func (c *Client) GetMenus(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := c.get(ctx, "/menu", &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (c *Client) GetMenusByCategory(ctx context.Context, categoryID string) ([]models.Menu, error) {
	var menus []models.Menu
	if err := c.get(ctx, "/menu/category/"+categoryID, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (c *Client) CreateMenu(ctx context.Context, req models.MenuRequest) (models.Menu, error) {
	var menu models.Menu
	if err := c.send(ctx, http.MethodPost, "/menu", req, &menu); err != nil {
		return models.Menu{}, err
	}
	return menu, nil
}

func (c *Client) UpdateMenu(ctx context.Context, id string, req models.MenuRequest) (models.Menu, error) {
	var menu models.Menu
	if err := c.send(ctx, http.MethodPut, "/menu/"+id, req, &menu); err != nil {
		return models.Menu{}, err
	}
	return menu, nil
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/menu/"+id, nil, nil)
}

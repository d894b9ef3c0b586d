package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yeremiapane/restaurant-client/models"
)

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/category", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, req models.CategoryRequest) (models.Category, error) {
	var category models.Category
	if err := c.send(ctx, http.MethodPost, "/category", req, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req models.CategoryRequest) (models.Category, error) {
	var category models.Category
	if err := c.send(ctx, http.MethodPut, "/category/"+id, req, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a category. A gateway 409 (menu items still
// reference the category) is mapped to ErrCategoryInUse.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	err := c.send(ctx, http.MethodDelete, "/category/"+id, nil, nil)
	if statusCode(err) == http.StatusConflict {
		return fmt.Errorf("delete category %s: %w", id, ErrCategoryInUse)
	}
	return err
}

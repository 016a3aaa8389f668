package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// CatalogController serves category endpoints.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListCategories is public. GET /categories/
func (ctl *CatalogController) ListCategories(c *ctx.Context) {
	views, err := ctl.catalog.ListCategories()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(views)
}

// CreateCategory is admin-only. POST /categories/
func (ctl *CatalogController) CreateCategory(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}

	category, err := ctl.catalog.CreateCategory(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(category)
}

// UpdateCategory is admin-only. PATCH /categories/{id}/
func (ctl *CatalogController) UpdateCategory(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}

	category, err := ctl.catalog.UpdateCategory(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(category)
}

// DeleteCategory is admin-only. DELETE /categories/{id}/
func (ctl *CatalogController) DeleteCategory(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	if err := ctl.catalog.DeleteCategory(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Category deleted."})
}

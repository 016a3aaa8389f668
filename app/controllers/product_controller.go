package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// ProductController serves product browse and admin mutation endpoints.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List is the public filtered listing. GET /products/
//
// Query parameters: category, size, color, price__gte, price__lte,
// rating__gte, rating__lte, search, ordering, page, page_size.
func (ctl *ProductController) List(c *ctx.Context) {
	filter := repositories.ProductFilter{
		Size:      c.Query("size"),
		Color:     c.Query("color"),
		PriceGte:  c.Query("price__gte"),
		PriceLte:  c.Query("price__lte"),
		RatingGte: c.Query("rating__gte"),
		RatingLte: c.Query("rating__lte"),
		Search:    c.Query("search"),
		Ordering:  c.Query("ordering"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", repositories.DefaultPageSize),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.Error(http.StatusBadRequest, "The category parameter must be an id.")
			return
		}
		filter.CategoryID = uint(id)
	}

	products, pagination, err := ctl.catalog.ListProducts(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(products, pagination)
}

// Get returns one product. GET /products/{id}/
func (ctl *ProductController) Get(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	product, err := ctl.catalog.GetProduct(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Create is admin-only. POST /products/
func (ctl *ProductController) Create(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := ctl.catalog.CreateProduct(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(product)
}

// Update is admin-only and partial: absent fields stay unchanged.
// PUT/PATCH /products/{id}/
func (ctl *ProductController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := ctl.catalog.UpdateProduct(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Delete is admin-only. DELETE /products/{id}/
func (ctl *ProductController) Delete(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	if err := ctl.catalog.DeleteProduct(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Product deleted."})
}

// UploadImage stores a product photo on the configured disk and saves
// its path. POST /products/{id}/image/ with multipart field "image".
func (ctl *ProductController) UploadImage(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "The image file is required.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.Error(http.StatusBadRequest, "Only jpg, jpeg, png, and webp images are accepted.")
		return
	}

	path := fmt.Sprintf("products/%d/image%s", id, ext)
	if err := storage.PutStream(path, io.LimitReader(file, 10<<20)); err != nil {
		fail(c, err)
		return
	}

	product, err := ctl.catalog.SetProductImage(id, path)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{
		"image": product.Image,
		"url":   storage.URL(product.Image),
	})
}

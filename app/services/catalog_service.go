package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// categoriesCacheKey holds the serialized category tree. Any category
// mutation drops the key; reads repopulate it.
const (
	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 5 * time.Minute
)

// CatalogService covers category listing and product browse/mutation.
// The category tree is read on every storefront page, so it is served
// from the cache store and invalidated on writes.
type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
	store      cache.Store
}

func NewCatalogService(categories *repositories.CategoryRepository, products *repositories.ProductRepository, store cache.Store) *CatalogService {
	return &CatalogService{categories: categories, products: products, store: store}
}

// CategoryView is the public shape of a category: its name plus the
// names of its direct subcategories.
type CategoryView struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	ParentID      *uint    `json:"parent_id"`
	Subcategories []string `json:"subcategories"`
}

// ListCategories returns all categories with direct subcategory names.
// Results come from the cache when present; a miss reads the database
// and repopulates. Cache errors degrade to a database read, never a
// failed request.
func (s *CatalogService) ListCategories() ([]CategoryView, error) {
	ctx := context.Background()
	if raw, err := s.store.Get(ctx, categoriesCacheKey); err == nil {
		var views []CategoryView
		if err := json.Unmarshal([]byte(raw), &views); err == nil {
			return views, nil
		}
	}

	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		names := make([]string, 0, len(c.Children))
		for _, child := range c.Children {
			names = append(names, child.Name)
		}
		views = append(views, CategoryView{
			ID:            c.ID,
			Name:          c.Name,
			ParentID:      c.ParentID,
			Subcategories: names,
		})
	}

	if raw, err := json.Marshal(views); err == nil {
		if err := s.store.Set(ctx, categoriesCacheKey, string(raw), categoriesCacheTTL); err != nil {
			logger.Warn("category cache write failed", "error", err)
		}
	}
	return views, nil
}

// invalidateCategories drops the cached category tree after a write.
func (s *CatalogService) invalidateCategories() {
	if err := s.store.Delete(context.Background(), categoriesCacheKey); err != nil {
		logger.Warn("category cache invalidation failed", "error", err)
	}
}

// CategoryInput is the admin payload for creating or updating a
// category. Name is optional on update (rename only when provided).
type CategoryInput struct {
	Name     string `json:"name" validate:"nullable,max=255"`
	ParentID *uint  `json:"parent_id"`
}

// CreateCategory adds a category, rejecting duplicate names and
// missing parents.
func (s *CatalogService) CreateCategory(in CategoryInput) (models.Category, error) {
	if in.Name == "" {
		return models.Category{}, NewValidationError("name", "The name field is required.")
	}
	if taken, err := s.categories.NameTaken(in.Name); err != nil {
		return models.Category{}, err
	} else if taken {
		return models.Category{}, NewValidationError("name", "A category with this name already exists.")
	}

	if in.ParentID != nil {
		if _, err := s.categories.FindByID(*in.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Category{}, NewValidationError("parent_id", "Parent category does not exist.")
			}
			return models.Category{}, err
		}
	}

	category := models.Category{Name: in.Name, ParentID: in.ParentID}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	s.invalidateCategories()
	return category, nil
}

// UpdateCategory renames or re-parents a category. Re-parenting is
// where a cycle could sneak in, so the new parent chain is walked to
// the root first.
func (s *CatalogService) UpdateCategory(id uint, in CategoryInput) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, err
	}

	if in.Name != "" && in.Name != category.Name {
		if taken, err := s.categories.NameTaken(in.Name); err != nil {
			return models.Category{}, err
		} else if taken {
			return models.Category{}, NewValidationError("name", "A category with this name already exists.")
		}
		category.Name = in.Name
	}

	if in.ParentID != nil {
		if *in.ParentID == id {
			return models.Category{}, NewValidationError("parent_id", "A category cannot be its own parent.")
		}
		if _, err := s.categories.FindByID(*in.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Category{}, NewValidationError("parent_id", "Parent category does not exist.")
			}
			return models.Category{}, err
		}
		cycle, err := s.categories.WouldCycle(id, *in.ParentID)
		if err != nil {
			return models.Category{}, err
		}
		if cycle {
			return models.Category{}, NewValidationError("parent_id", "This parent would create a category cycle.")
		}
		category.ParentID = in.ParentID
	}

	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, err
	}
	s.invalidateCategories()
	return category, nil
}

// DeleteCategory removes a category, its products, and re-roots its
// children.
func (s *CatalogService) DeleteCategory(id uint) error {
	if _, err := s.categories.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.invalidateCategories()
	return nil
}

// ListProducts returns the filtered, sorted, paginated product listing.
func (s *CatalogService) ListProducts(f repositories.ProductFilter) ([]models.Product, response.Pagination, error) {
	return s.products.List(f)
}

// GetProduct returns one product by id.
func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return product, err
}

// ProductInput is the admin payload for creating or updating a product.
// On partial update (PATCH) nil pointers mean "leave unchanged".
type ProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *string  `json:"price"`
	DiscountPrice *string  `json:"discount_price"`
	Rating        *float64 `json:"rating"`
	Stock         *int     `json:"stock"`
	CategoryID    *uint    `json:"category_id"`
	Size          *string  `json:"size"`
	Color         *string  `json:"color"`
	IsAvailable   *bool    `json:"is_available"`
}

// CreateProduct validates and persists a new product. Name, price and
// category are required on create.
func (s *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	if in.Name == nil || *in.Name == "" {
		return models.Product{}, NewValidationError("name", "The name field is required.")
	}
	if in.Price == nil {
		return models.Product{}, NewValidationError("price", "The price field is required.")
	}
	if in.CategoryID == nil {
		return models.Product{}, NewValidationError("category_id", "The category_id field is required.")
	}

	var product models.Product
	product.IsAvailable = true
	if err := s.apply(&product, in); err != nil {
		return models.Product{}, err
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *CatalogService) UpdateProduct(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	if err := s.apply(&product, in); err != nil {
		return models.Product{}, err
	}
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// apply copies the provided fields onto the product, validating enums,
// references, and money formats as it goes.
func (s *CatalogService) apply(product *models.Product, in ProductInput) error {
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		price, err := decimal.NewFromString(*in.Price)
		if err != nil || price.IsNegative() {
			return NewValidationError("price", "The price must be a non-negative decimal.")
		}
		product.Price = price
	}
	if in.DiscountPrice != nil {
		if *in.DiscountPrice == "" {
			product.DiscountPrice = nil
		} else {
			dp, err := decimal.NewFromString(*in.DiscountPrice)
			if err != nil || dp.IsNegative() {
				return NewValidationError("discount_price", "The discount_price must be a non-negative decimal.")
			}
			product.DiscountPrice = &dp
		}
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return NewValidationError("rating", "The rating must be between 0 and 5.")
		}
		product.Rating = *in.Rating
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return NewValidationError("stock", "The stock must not be negative.")
		}
		product.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		if _, err := s.categories.FindByID(*in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("category_id", "Category does not exist.")
			}
			return err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Size != nil {
		if !models.ValidSize(*in.Size) {
			return NewValidationError("size", "The selected size is invalid.")
		}
		product.Size = *in.Size
	}
	if in.Color != nil {
		if !models.ValidColor(*in.Color) {
			return NewValidationError("color", "The selected color is invalid.")
		}
		product.Color = *in.Color
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}
	return nil
}

// DeleteProduct removes a product and purges it from live carts.
func (s *CatalogService) DeleteProduct(id uint) error {
	if _, err := s.products.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.products.Delete(id)
}

// SetProductImage stores the uploaded image path on the product.
func (s *CatalogService) SetProductImage(id uint, path string) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	product.Image = path
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

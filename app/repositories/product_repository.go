package repositories

import (
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"gorm.io/gorm"
)

// ProductFilter describes the query surface of the product listing.
// Zero values mean "not filtered".
type ProductFilter struct {
	CategoryID uint
	Size       string
	Color      string
	PriceGte   string // decimal strings, compared in SQL
	PriceLte   string
	RatingGte  string
	RatingLte  string
	Search     string // matched against name and description
	Ordering   string // one of orderableFields, "-" prefix for descending
	Page       int
	PageSize   int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Fields the caller may order by. Anything else falls back to the
// default created_at ascending.
var orderableFields = map[string]string{
	"price":          "price",
	"rating":         "rating",
	"created_at":     "created_at",
	"discount_price": "discount_price",
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns available products matching the filter, with pagination
// metadata. Unavailable products are never listed.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, response.Pagination, error) {
	q := r.db.Model(&models.Product{}).Where("is_available = ?", true)

	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	if f.Color != "" {
		q = q.Where("color = ?", f.Color)
	}
	if f.PriceGte != "" {
		q = q.Where("price >= ?", f.PriceGte)
	}
	if f.PriceLte != "" {
		q = q.Where("price <= ?", f.PriceLte)
	}
	if f.RatingGte != "" {
		q = q.Where("rating >= ?", f.RatingGte)
	}
	if f.RatingLte != "" {
		q = q.Where("rating <= ?", f.RatingLte)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var products []models.Product
	err := q.Order(buildOrder(f.Ordering)).
		Preload("Category").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, response.Pagination{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return products, response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func buildOrder(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	col, ok := orderableFields[field]
	if !ok {
		return "created_at asc"
	}
	if desc {
		return col + " desc"
	}
	return col + " asc"
}

// FindByID returns a product with its category preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product and purges it from all live carts in one
// transaction, so no cart row is left pointing at a gone product.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

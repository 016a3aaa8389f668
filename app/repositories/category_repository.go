package repositories

import (
	"github.com/shashiranjanraj/vastra/app/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category with its direct children preloaded.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Preload("Children").Order("name asc").Find(&categories).Error
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return category, err
}

// NameTaken reports whether a category with this name already exists.
func (r *CategoryRepository) NameTaken(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category inside one transaction: children are
// re-rooted (parent set to NULL), cart rows holding the category's
// products are purged, owned products are deleted, then the category
// itself goes. The cart purge must run before the product delete so
// the subquery still sees the rows. Partial failure rolls everything
// back.
func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		owned := tx.Model(&models.Product{}).
			Select("id").
			Where("category_id = ?", id)
		if err := tx.Where("product_id IN (?)", owned).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).
			Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// WouldCycle reports whether attaching child under parent would create
// a cycle in the category tree. It walks up from parent to the root.
func (r *CategoryRepository) WouldCycle(childID, parentID uint) (bool, error) {
	current := parentID
	for current != 0 {
		if current == childID {
			return true, nil
		}
		var cat models.Category
		if err := r.db.Select("parent_id").First(&cat, current).Error; err != nil {
			return false, err
		}
		if cat.ParentID == nil {
			return false, nil
		}
		current = *cat.ParentID
	}
	return false, nil
}

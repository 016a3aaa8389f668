package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
)

func strptr(s string) *string   { return &s }
func intptr(i int) *int         { return &i }
func uintp(u uint) *uint        { return &u }
func f64ptr(f float64) *float64 { return &f }

func TestListCategoriesWithSubcategories(t *testing.T) {
	env := newTestEnv(t)
	clothing := env.seedCategory(t, "Clothing", nil)
	env.seedCategory(t, "T-Shirts", &clothing.ID)
	env.seedCategory(t, "Jeans", &clothing.ID)

	views, err := env.catalog.ListCategories()
	require.NoError(t, err)
	require.Len(t, views, 3)

	byName := map[string]services.CategoryView{}
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.ElementsMatch(t, []string{"T-Shirts", "Jeans"}, byName["Clothing"].Subcategories)
	assert.Empty(t, byName["Jeans"].Subcategories)
}

func TestListCategoriesServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	env.seedCategory(t, "Clothing", nil)

	first, err := env.catalog.ListCategories()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the service is invisible while the cache
	// entry lives.
	env.seedCategory(t, "Accessories", nil)
	cached, err := env.catalog.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// A write through the service drops the entry and the next read
	// sees everything.
	_, err = env.catalog.CreateCategory(services.CategoryInput{Name: "Footwear"})
	require.NoError(t, err)
	fresh, err := env.catalog.ListCategories()
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.catalog.CreateCategory(services.CategoryInput{Name: "Clothing"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = env.catalog.CreateCategory(services.CategoryInput{Name: "Clothing"})
	assert.True(t, isValidationError(err, "name"))

	_, err = env.catalog.CreateCategory(services.CategoryInput{Name: ""})
	assert.True(t, isValidationError(err, "name"))

	missing := uint(9999)
	_, err = env.catalog.CreateCategory(services.CategoryInput{Name: "Jeans", ParentID: &missing})
	assert.True(t, isValidationError(err, "parent_id"))
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	env := newTestEnv(t)
	root := env.seedCategory(t, "Clothing", nil)
	mid := env.seedCategory(t, "T-Shirts", &root.ID)
	leaf := env.seedCategory(t, "Graphic Tees", &mid.ID)

	// Making the root a child of its own grandchild closes a loop.
	_, err := env.catalog.UpdateCategory(root.ID, services.CategoryInput{ParentID: &leaf.ID})
	assert.True(t, isValidationError(err, "parent_id"))

	// Self-parenting is the degenerate case.
	_, err = env.catalog.UpdateCategory(mid.ID, services.CategoryInput{ParentID: &mid.ID})
	assert.True(t, isValidationError(err, "parent_id"))

	// A legal re-parent still works.
	moved, err := env.catalog.UpdateCategory(leaf.ID, services.CategoryInput{ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentID)
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	root := env.seedCategory(t, "Clothing", nil)
	child := env.seedCategory(t, "T-Shirts", &root.ID)
	product := env.seedProduct(t, "Classic Crew Tee", "24.99", root.ID)
	require.NoError(t, env.cart.Add(userID, product.ID, 1))

	require.NoError(t, env.catalog.DeleteCategory(root.ID))

	// Children are re-rooted, not deleted.
	var orphan models.Category
	require.NoError(t, env.db.First(&orphan, child.ID).Error)
	assert.Nil(t, orphan.ParentID)

	// The category's products are gone, along with their cart rows.
	var productCount, cartCount int64
	require.NoError(t, env.db.Model(&models.Product{}).Where("category_id = ?", root.ID).Count(&productCount).Error)
	assert.Zero(t, productCount)
	require.NoError(t, env.db.Model(&models.CartItem{}).Count(&cartCount).Error)
	assert.Zero(t, cartCount)

	assert.ErrorIs(t, env.catalog.DeleteCategory(root.ID), services.ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "T-Shirts", nil)

	_, err := env.catalog.CreateProduct(services.ProductInput{})
	assert.True(t, isValidationError(err, "name"))

	_, err = env.catalog.CreateProduct(services.ProductInput{Name: strptr("Tee")})
	assert.True(t, isValidationError(err, "price"))

	_, err = env.catalog.CreateProduct(services.ProductInput{
		Name:  strptr("Tee"),
		Price: strptr("24.99"),
	})
	assert.True(t, isValidationError(err, "category_id"))

	_, err = env.catalog.CreateProduct(services.ProductInput{
		Name:       strptr("Tee"),
		Price:      strptr("not-money"),
		CategoryID: uintp(cat.ID),
	})
	assert.True(t, isValidationError(err, "price"))

	_, err = env.catalog.CreateProduct(services.ProductInput{
		Name:       strptr("Tee"),
		Price:      strptr("24.99"),
		CategoryID: uintp(cat.ID),
		Size:       strptr("XXXL"),
	})
	assert.True(t, isValidationError(err, "size"))

	_, err = env.catalog.CreateProduct(services.ProductInput{
		Name:       strptr("Tee"),
		Price:      strptr("24.99"),
		CategoryID: uintp(cat.ID),
		Rating:     f64ptr(5.5),
	})
	assert.True(t, isValidationError(err, "rating"))

	created, err := env.catalog.CreateProduct(services.ProductInput{
		Name:       strptr("Tee"),
		Price:      strptr("24.99"),
		CategoryID: uintp(cat.ID),
		Stock:      intptr(5),
		Size:       strptr("M"),
		Color:      strptr("Black"),
	})
	require.NoError(t, err)
	assert.True(t, created.IsAvailable, "products default to available")
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "T-Shirts", nil)
	product := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)

	updated, err := env.catalog.UpdateProduct(product.ID, services.ProductInput{
		Price: strptr("29.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "29.99", updated.Price.StringFixed(2))
	assert.Equal(t, "Classic Crew Tee", updated.Name, "untouched fields survive a partial update")

	_, err = env.catalog.UpdateProduct(9999, services.ProductInput{Price: strptr("1.00")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteProductPurgesCarts(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	product := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	require.NoError(t, env.cart.Add(userID, product.ID, 2))

	require.NoError(t, env.catalog.DeleteProduct(product.ID))

	view, err := env.cart.View(userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = env.catalog.GetProduct(product.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	env := newTestEnv(t)
	tees := env.seedCategory(t, "T-Shirts", nil)
	jeans := env.seedCategory(t, "Jeans", nil)

	cheap := env.seedProduct(t, "Budget Tee", "9.99", tees.ID)
	mid := env.seedProduct(t, "Classic Crew Tee", "24.99", tees.ID)
	env.seedProduct(t, "Slim Fit Jeans", "59.99", jeans.ID)

	hidden := env.seedProduct(t, "Retired Tee", "14.99", tees.ID)
	require.NoError(t, env.db.Model(&hidden).Update("is_available", false).Error)

	// Category filter, and unavailable products never listed.
	products, page, err := env.catalog.ListProducts(repositories.ProductFilter{CategoryID: tees.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.EqualValues(t, 2, page.Total)

	// Price range.
	products, _, err = env.catalog.ListProducts(repositories.ProductFilter{
		PriceGte: "10.00",
		PriceLte: "30.00",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, mid.ID, products[0].ID)

	// Search matches name.
	products, _, err = env.catalog.ListProducts(repositories.ProductFilter{Search: "Budget"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, cheap.ID, products[0].ID)
}

func TestListProductsOrderingAndPaging(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "T-Shirts", nil)
	env.seedProduct(t, "A", "10.00", cat.ID)
	env.seedProduct(t, "B", "30.00", cat.ID)
	env.seedProduct(t, "C", "20.00", cat.ID)

	products, _, err := env.catalog.ListProducts(repositories.ProductFilter{Ordering: "-price"})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "B", products[0].Name)
	assert.Equal(t, "A", products[2].Name)

	// An unknown ordering field falls back to the default, not an error.
	_, _, err = env.catalog.ListProducts(repositories.ProductFilter{Ordering: "password"})
	assert.NoError(t, err)

	products, page, err := env.catalog.ListProducts(repositories.ProductFilter{
		Ordering: "price",
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "B", products[0].Name)
	assert.EqualValues(t, 3, page.Total)
	assert.EqualValues(t, 2, page.TotalPages)
}

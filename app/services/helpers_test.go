package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
)

// testEnv is a fully wired service layer over a fresh in-memory
// database, one per test.
type testEnv struct {
	db *gorm.DB

	auth    *services.AuthService
	catalog *services.CatalogService
	cart    *services.CartService
	orders  *services.OrderService

	carts *repositories.CartRepository
	store cache.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenTest()
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	tokens := auth.NewManager("test-secret")
	blacklist := auth.NewBlacklist(cache.NewMemory())
	store := cache.NewMemory()

	return &testEnv{
		db:      db,
		auth:    services.NewAuthService(users, tokens, blacklist),
		catalog: services.NewCatalogService(categories, products, store),
		cart:    services.NewCartService(carts, products),
		orders:  services.NewOrderService(orders),
		carts:   carts,
		store:   store,
	}
}

// seedUser inserts a customer directly and returns its id.
func (e *testEnv) seedUser(t *testing.T, username, email string) uint {
	t.Helper()
	hash, err := auth.HashPassword("sturdy-passphrase-1")
	require.NoError(t, err)
	user := models.User{Username: username, Email: email, Password: hash, Role: models.RoleCustomer}
	require.NoError(t, e.db.Create(&user).Error)
	return user.ID
}

// seedCategory inserts a category and returns it.
func (e *testEnv) seedCategory(t *testing.T, name string, parentID *uint) models.Category {
	t.Helper()
	c := models.Category{Name: name, ParentID: parentID}
	require.NoError(t, e.db.Create(&c).Error)
	return c
}

// seedProduct inserts an available product priced as given.
func (e *testEnv) seedProduct(t *testing.T, name, price string, categoryID uint) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		CategoryID:  categoryID,
		Size:        "M",
		Color:       "Black",
		IsAvailable: true,
	}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

// isValidationError reports whether err is a field validation error on
// the given field.
func isValidationError(err error, field string) bool {
	var ve *services.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	_, present := ve.Fields[field]
	return present
}

package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	jeans := env.seedProduct(t, "Slim Fit Jeans", "59.99", cat.ID)

	require.NoError(t, env.cart.Add(userID, tee.ID, 2))
	require.NoError(t, env.cart.Add(userID, jeans.ID, 1))

	order, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "109.97", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 2)

	// Every order carries a uuid reference number.
	_, err = uuid.Parse(order.Number)
	assert.NoError(t, err)

	// Line items snapshot name and unit price.
	byName := map[string]models.OrderItem{}
	for _, item := range order.Items {
		byName[item.ProductName] = item
	}
	assert.Equal(t, 2, byName["Classic Crew Tee"].Quantity)
	assert.Equal(t, "24.99", byName["Classic Crew Tee"].UnitPrice.StringFixed(2))

	// Placement empties the cart.
	view, err := env.cart.View(userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")

	_, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.Error(t, err)
	assert.True(t, isValidationError(err, "cart"))

	// The failed placement must not leave a half-written order.
	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderAfterCategoryDelete(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	require.NoError(t, env.cart.Add(userID, tee.ID, 1))

	// Deleting the category takes the carted product with it. The
	// subsequent placement must fail as an empty cart, not crash on
	// the missing product.
	require.NoError(t, env.catalog.DeleteCategory(cat.ID))

	_, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.Error(t, err)
	assert.True(t, isValidationError(err, "cart"))

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderSkipsStaleCartLines(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	jeans := env.seedProduct(t, "Slim Fit Jeans", "59.99", cat.ID)

	require.NoError(t, env.cart.Add(userID, tee.ID, 2))
	require.NoError(t, env.cart.Add(userID, jeans.ID, 1))

	// Soft-delete one product behind the cart's back. Its line must
	// be dropped from the order instead of panicking on the missing
	// preload.
	require.NoError(t, env.db.Delete(&models.Product{}, jeans.ID).Error)

	order, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic Crew Tee", order.Items[0].ProductName)
	assert.Equal(t, "49.98", order.TotalAmount.StringFixed(2))
}

func TestPlaceOrderRequiresAddress(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	require.NoError(t, env.cart.Add(userID, tee.ID, 1))

	_, err := env.orders.Place(userID, "")
	assert.True(t, isValidationError(err, "shipping_address"))
}

func TestOrderTotalSurvivesPriceChange(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)

	require.NoError(t, env.cart.Add(userID, tee.ID, 1))
	order, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.Product{}).
		Where("id = ?", tee.ID).
		Update("price", "99.00").Error)

	history, err := env.orders.Track(userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.TotalAmount.StringFixed(2), history[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "24.99", history[0].Items[0].UnitPrice.StringFixed(2))
}

func TestTrackIsPerUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)

	require.NoError(t, env.cart.Add(alice, tee.ID, 1))
	_, err := env.orders.Place(alice, "12 Harbor Lane, Kochi")
	require.NoError(t, err)

	mine, err := env.orders.Track(alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := env.orders.Track(bob)
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "meera", "meera@example.com")
	cat := env.seedCategory(t, "T-Shirts", nil)
	tee := env.seedProduct(t, "Classic Crew Tee", "24.99", cat.ID)
	require.NoError(t, env.cart.Add(userID, tee.ID, 1))
	order, err := env.orders.Place(userID, "12 Harbor Lane, Kochi")
	require.NoError(t, err)

	updated, err := env.orders.UpdateStatus(order.ID, models.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)

	// Backward transitions are allowed; operators fix mistakes.
	updated, err = env.orders.UpdateStatus(order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.UpdateStatus(1, "Teleported")
	assert.True(t, isValidationError(err, "status"))

	_, err = env.orders.UpdateStatus(9999, models.StatusShipped)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

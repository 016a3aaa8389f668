package routes_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// apiTest boots the full HTTP surface over an in-memory database.
// mailErr, when set, makes the contact transport fail with it.
type apiTest struct {
	db      *gorm.DB
	srv     *httptest.Server
	tokens  *auth.Manager
	mailErr error
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()

	db, err := database.OpenTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	carts := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	tokens := auth.NewManager("test-secret")
	blacklist := auth.NewBlacklist(cache.NewMemory())

	at := &apiTest{db: db, tokens: tokens}

	authService := services.NewAuthService(users, tokens, blacklist)
	catalogService := services.NewCatalogService(categories, products, cache.NewMemory())
	cartService := services.NewCartService(carts, products)
	orderService := services.NewOrderService(orders)
	contactService := services.NewContactService(func(services.ContactInput) error { return at.mailErr })

	schema, err := graph.NewSchema(catalogService)
	require.NoError(t, err)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	r.Use(chimw.StripSlashes)
	routes.RegisterAPI(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Catalog: controllers.NewCatalogController(catalogService),
		Product: controllers.NewProductController(catalogService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService, hub),
		Contact: controllers.NewContactController(contactService),
		Tokens:  tokens,
		Schema:  schema,
	})

	at.srv = httptest.NewServer(r.Handler())
	t.Cleanup(at.srv.Close)

	return at
}

// request performs a JSON request and decodes the envelope.
func (a *apiTest) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return res.StatusCode, envelope
}

// tokenFor mints an access token for a user seeded directly in the db.
func (a *apiTest) tokenFor(t *testing.T, username, role string) string {
	t.Helper()
	hash, err := auth.HashPassword("sturdy-passphrase-1")
	require.NoError(t, err)
	user := models.User{Username: username, Email: username + "@example.com", Password: hash, Role: role}
	require.NoError(t, a.db.Create(&user).Error)
	pair, err := a.tokens.IssuePair(user.ID, user.Role)
	require.NoError(t, err)
	return pair.Access
}

func (a *apiTest) seedProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	cat := models.Category{Name: name + " Category"}
	require.NoError(t, a.db.Create(&cat).Error)
	p := models.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		CategoryID:  cat.ID,
		Size:        "M",
		Color:       "Black",
		IsAvailable: true,
	}
	require.NoError(t, a.db.Create(&p).Error)
	return p
}

func TestRegisterLoginFlow(t *testing.T) {
	api := newAPITest(t)

	code, env := api.request(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username":              "meera",
		"email":                 "meera@example.com",
		"password":              "sturdy-passphrase-1",
		"password_confirmation": "sturdy-passphrase-1",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.EqualValues(t, http.StatusCreated, env["status"])

	code, env = api.request(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "meera@example.com",
		"password": "sturdy-passphrase-1",
	})
	require.Equal(t, http.StatusOK, code)
	data := env["data"].(map[string]any)
	assert.NotEmpty(t, data["access"])
	assert.NotEmpty(t, data["refresh"])

	// The access token opens protected routes.
	code, env = api.request(t, http.MethodGet, "/auth/profile", data["access"].(string), nil)
	require.Equal(t, http.StatusOK, code)
	profile := env["data"].(map[string]any)
	assert.Equal(t, "meera", profile["username"])
	assert.Equal(t, "customer", profile["role"])
}

func TestRegisterValidationErrors(t *testing.T) {
	api := newAPITest(t)

	code, env := api.request(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "meera",
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.EqualValues(t, http.StatusUnprocessableEntity, env["status"])
	assert.Contains(t, env["errors"], "email")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPITest(t)

	code, _ := api.request(t, http.MethodGet, "/cart/view", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.request(t, http.MethodGet, "/cart/view", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminRoutesForbiddenForCustomers(t *testing.T) {
	api := newAPITest(t)
	customer := api.tokenFor(t, "meera", models.RoleCustomer)

	code, _ := api.request(t, http.MethodPost, "/products", customer, map[string]any{
		"name": "Tee", "price": "24.99", "category_id": 1,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.request(t, http.MethodPatch, "/order/update-status/1", customer, map[string]any{
		"status": "Shipped",
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCartAndOrderFlow(t *testing.T) {
	api := newAPITest(t)
	token := api.tokenFor(t, "meera", models.RoleCustomer)
	product := api.seedProduct(t, "Classic Crew Tee", "24.99")

	code, _ := api.request(t, http.MethodPost, "/cart/add", token, map[string]any{
		"product_id": product.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, code)

	code, env := api.request(t, http.MethodGet, "/cart/view", token, nil)
	require.Equal(t, http.StatusOK, code)
	cart := env["data"].(map[string]any)
	assert.Equal(t, "49.98", cart["total_amount"])

	code, env = api.request(t, http.MethodPost, "/order/place", token, map[string]any{
		"shipping_address": "12 Harbor Lane, Kochi",
	})
	require.Equal(t, http.StatusCreated, code)
	order := env["data"].(map[string]any)
	assert.Equal(t, "Pending", order["status"])

	code, env = api.request(t, http.MethodGet, "/order/track", token, nil)
	require.Equal(t, http.StatusOK, code)
	list := env["data"].([]any)
	assert.Len(t, list, 1)

	// Admin moves the order along.
	admin := api.tokenFor(t, "boss", models.RoleAdmin)
	orderID := int(order["id"].(float64))
	code, env = api.request(t, http.MethodPatch,
		"/order/update-status/"+strconv.Itoa(orderID), admin,
		map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Shipped", env["data"].(map[string]any)["status"])
}

func TestProductListingPublic(t *testing.T) {
	api := newAPITest(t)
	api.seedProduct(t, "Classic Crew Tee", "24.99")
	api.seedProduct(t, "Slim Fit Jeans", "59.99")

	code, env := api.request(t, http.MethodGet, "/products?ordering=-price", "", nil)
	require.Equal(t, http.StatusOK, code)
	list := env["data"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "Slim Fit Jeans", first["name"])

	pagination := env["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pagination["total"])

	// Trailing slashes are accepted.
	code, _ = api.request(t, http.MethodGet, "/products/", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestContactValidation(t *testing.T) {
	api := newAPITest(t)

	code, _ := api.request(t, http.MethodPost, "/contact", "", map[string]any{
		"name": "Meera", "email": "not-an-email", "subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = api.request(t, http.MethodPost, "/contact", "", map[string]any{
		"name": "Meera", "email": "meera@example.com", "subject": "Hi", "message": "Hello there",
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestContactTransportFailure(t *testing.T) {
	api := newAPITest(t)
	api.mailErr = errors.New("smtp 451: greylisted, try again later")

	code, env := api.request(t, http.MethodPost, "/contact", "", map[string]any{
		"name": "Meera", "email": "meera@example.com", "subject": "Hi", "message": "Hello there",
	})
	assert.Equal(t, http.StatusInternalServerError, code)

	// The transport's message reaches the client, not a generic 500.
	msg, _ := env["message"].(string)
	assert.Contains(t, msg, "greylisted")
}

func TestGraphQLProducts(t *testing.T) {
	api := newAPITest(t)
	api.seedProduct(t, "Classic Crew Tee", "24.99")

	code, env := api.request(t, http.MethodPost, "/graphql", "", map[string]any{
		"query": `{ products { name price } }`,
	})
	require.Equal(t, http.StatusOK, code)
	data := env["data"].(map[string]any)
	list := data["products"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Classic Crew Tee", list[0].(map[string]any)["name"])
}

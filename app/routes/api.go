// Package routes wires every HTTP endpoint to its controller.
package routes

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/rbac"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// Controllers bundles everything RegisterAPI needs.
type Controllers struct {
	Auth    *controllers.AuthController
	Catalog *controllers.CatalogController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Contact *controllers.ContactController

	Tokens *auth.Manager
	Schema graphql.Schema
}

// RegisterAPI mounts the whole HTTP surface on r. Trailing slashes are
// normalised away by the server's StripSlashes middleware, so routes
// are registered without them.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"service": "vastra", "status": "ok"})
	})

	// Public auth surface.
	authGroup := r.Group("/auth")
	authGroup.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	authGroup.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	authGroup.Post("/refresh", "auth.refresh", ctx.Wrap(c.Auth.Refresh))

	authed := middleware.Authenticate(c.Tokens)
	adminOnly := rbac.HasRole("admin")

	profile := r.Group("/auth", authed)
	profile.Get("/profile", "auth.profile", ctx.Wrap(c.Auth.Profile))

	// Contact form.
	r.Post("/contact", "contact.submit", ctx.Wrap(c.Contact.Submit))

	// Catalogue: public reads, admin writes.
	r.Get("/categories", "categories.list", ctx.Wrap(c.Catalog.ListCategories))
	categoriesAdmin := r.Group("/categories", authed, adminOnly)
	categoriesAdmin.Post("", "categories.create", ctx.Wrap(c.Catalog.CreateCategory))
	categoriesAdmin.Patch("/{id}", "categories.update", ctx.Wrap(c.Catalog.UpdateCategory))
	categoriesAdmin.Delete("/{id}", "categories.delete", ctx.Wrap(c.Catalog.DeleteCategory))

	r.Get("/products", "products.list", ctx.Wrap(c.Product.List))
	r.Get("/products/{id}", "products.show", ctx.Wrap(c.Product.Get))
	productsAdmin := r.Group("/products", authed, adminOnly)
	productsAdmin.Post("", "products.create", ctx.Wrap(c.Product.Create))
	productsAdmin.Put("/{id}", "products.update", ctx.Wrap(c.Product.Update))
	productsAdmin.Patch("/{id}", "products.patch", ctx.Wrap(c.Product.Update))
	productsAdmin.Delete("/{id}", "products.delete", ctx.Wrap(c.Product.Delete))
	productsAdmin.Post("/{id}/image", "products.image", ctx.Wrap(c.Product.UploadImage))

	// Cart, orders: authenticated.
	cart := r.Group("/cart", authed)
	cart.Post("/add", "cart.add", ctx.Wrap(c.Cart.Add))
	cart.Get("/view", "cart.view", ctx.Wrap(c.Cart.View))
	cart.Patch("/update/{id}", "cart.update", ctx.Wrap(c.Cart.Update))
	cart.Delete("/remove/{id}", "cart.remove", ctx.Wrap(c.Cart.Remove))

	order := r.Group("/order", authed)
	order.Post("/place", "order.place", ctx.Wrap(c.Order.Place))
	order.Get("/track", "order.track", ctx.Wrap(c.Order.Track))

	orderAdmin := r.Group("/order", authed, adminOnly)
	orderAdmin.Patch("/update-status/{id}", "order.update_status", ctx.Wrap(c.Order.UpdateStatus))

	// Live order status stream. The token rides in ?token= because
	// browsers cannot set headers on websocket upgrades.
	wsGroup := r.Group("/ws", authed)
	wsGroup.Get("/orders", "ws.orders", ctx.Wrap(c.Order.Stream))

	// Read-only GraphQL catalogue.
	r.Post("/graphql", "graphql", graph.Handler(c.Schema))

	// Observability and assets.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/storage/*", "storage.serve", serveStorage)
}

// serveStorage streams a file from the default disk so locally stored
// product images resolve under the same origin as the API.
func serveStorage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path[len("/storage/"):]
	if path == "" || storage.Missing(path) {
		response.NotFound(w)
		return
	}
	stream, err := storage.GetStream(path)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not read file")
		return
	}
	defer stream.Close()

	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, stream) //nolint:errcheck
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BrandonWrob/ExtendedManager/internal/handler"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Orders    *handler.OrderHandler
	History   *handler.HistoryHandler
	Tax       *handler.TaxHandler
	Inventory *handler.InventoryHandler
	Recipes   *handler.RecipeHandler
	Users     *handler.UserHandler
	Health    *handler.HealthHandler
}

// New builds the HTTP routes. Every request goes through the logger's
// request middleware.
func New(h Handlers, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(log.HTTPMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.CreateOrder)
			r.Get("/", h.Orders.GetAllOrders)
			r.Get("/mine", h.Orders.GetMyOrders)
			r.Get("/{id}", h.Orders.GetOrderByID)
			r.Put("/{id}/fulfill", h.Orders.FulfillOrder)
			r.Delete("/{id}", h.Orders.PickupOrder)
		})

		r.Route("/history", func(r chi.Router) {
			r.Post("/", h.History.CreateHistory)
			r.Get("/", h.History.GetOrderHistory)
			r.Get("/users/{username}", h.History.GetUserHistory)
			r.Get("/{id}", h.History.GetHistoryByID)
			r.Put("/{id}/status", h.History.UpdateHistoryStatus)
		})

		r.Route("/tax", func(r chi.Router) {
			r.Get("/", h.Tax.GetTaxRate)
			r.Put("/", h.Tax.SetTaxRate)
			r.Get("/calculate", h.Tax.CalculateTax)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.Inventory.GetInventory)
			r.Put("/", h.Inventory.RestockInventory)
			r.Post("/ingredients", h.Inventory.AddIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.Recipes.GetAllRecipes)
			r.Post("/", h.Recipes.CreateRecipe)
			r.Get("/{"+handler.RecipeParam+"}", h.Recipes.GetRecipe)
			r.Put("/{"+handler.RecipeParam+"}", h.Recipes.UpdateRecipe)
			r.Delete("/{"+handler.RecipeParam+"}", h.Recipes.DeleteRecipe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Users.RegisterUser)
			r.Get("/{username}", h.Users.GetUser)
		})
	})

	return r
}

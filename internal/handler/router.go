package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/cremecookies/storefront-system/internal/middleware"
	"github.com/cremecookies/storefront-system/internal/model"
)

// requireRole пропускает только аутентифицированных пользователей с
// одной из перечисленных ролей; деактивированные учётные записи
// отклоняются независимо от роли.
func (h *Handler) requireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := h.currentUser(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !user.Active {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// SetupRouter настраивает HTTP-маршруты и middleware витрины.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/catalog", h.Catalog)

		// Гостевое оформление заказа: корзина и заказ не требуют входа.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/", h.AddToCart)
			r.Post("/preset", h.AddPresetToCart)
			r.Put("/{id}", h.UpdateCartItem)
			r.Delete("/{id}", h.RemoveFromCart)
			r.Delete("/", h.ClearCart)
		})

		r.Post("/orders", h.PlaceOrder)
		r.Get("/orders/{id}", h.GetOrder)

		r.Post("/verify-email", h.StartVerification)
		r.Get("/verify-email", h.VerifyEmail)

		// Личный кабинет.
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/me", h.Me)
			r.Get("/notifications", h.GetNotifications)
			r.Post("/notifications/{id}/read", h.MarkNotificationRead)
			r.Get("/favorites", h.GetFavorites)
			r.Post("/favorites", h.AddFavorite)
			r.Delete("/favorites/{id}", h.RemoveFavorite)
			r.Get("/loyalty", h.Loyalty)
		})

		// Общие операции персонала.
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.requireRole(model.RoleAdmin, model.RoleKitchen, model.RoleDelivery))

			r.Get("/orders", h.GetOrders)
			r.Patch("/orders/{id}/status", h.UpdateOrderStatus)
		})

		// Панель кухни.
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.requireRole(model.RoleAdmin, model.RoleKitchen))

			r.Get("/kitchen/pending", h.KitchenPending)
		})

		// Панель курьера.
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.requireRole(model.RoleAdmin, model.RoleDelivery))

			r.Get("/delivery/available", h.DeliveryAvailable)
			r.Get("/delivery/deliveries", h.DriverDeliveries)
			r.Get("/delivery/history", h.DriverHistory)
			r.Patch("/orders/{id}/driver", h.AssignDriver)
		})

		// Панель администратора.
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.requireRole(model.RoleAdmin))

			r.Delete("/orders/{id}", h.DeleteOrder)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", h.Stats)
				r.Get("/users", h.GetUsers)
				r.Post("/users", h.AddUser)
				r.Post("/users/{id}/toggle", h.ToggleUserActive)
				r.Post("/toppings/{id}/toggle", h.ToggleTopping)
				r.Post("/coulis/{id}/toggle", h.ToggleCoulis)
				r.Put("/prices/{size}", h.UpdatePrice)
				r.Post("/promo", h.SendPromo)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

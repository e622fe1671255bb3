package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/cremecookies/storefront-system/internal/mailer"
	"github.com/cremecookies/storefront-system/internal/middleware"
	"github.com/cremecookies/storefront-system/internal/model"
	"github.com/cremecookies/storefront-system/internal/service"
	"github.com/cremecookies/storefront-system/internal/store"
	"github.com/cremecookies/storefront-system/internal/verification"
)

// nopSender подтверждает любую отправку, ничего не отправляя.
type nopSender struct{}

func (nopSender) Send(ctx context.Context, msg mailer.Email) error { return nil }

const demoPassword = "cremecookies"

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	st := store.New()
	st.Seed()

	svc := service.NewService(st, nopSender{}, verification.New(), "http://test.local", zap.NewNop())
	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, zap.NewNop(), auth).SetupRouter()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler, email, password string) *http.Cookie {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusOK)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatalf("auth cookie not set")
	return nil
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestRegister_SetsCookieAndAuthenticates(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "pw",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", w.Code, http.StatusCreated)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("registration must authenticate immediately")
	}

	me := doJSON(t, router, http.MethodGet, "/api/me", nil, cookie)
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d, want %d", me.Code, http.StatusOK)
	}

	user := decodeBody[map[string]any](t, me)
	if user["email"] != "a@x.com" || user["role"] != "client" {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "A", "email": "admin@cremecookies.fr", "password": "pw",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@cremecookies.fr", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{
		"clientName": "Marie", "clientPhone": "06 12 34 56 78", "clientAddress": "12 Rue de la Paix",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCartAndOrderFlow(t *testing.T) {
	router := newTestRouter(t)

	// Конфигуратор: XL с двумя топпингами и одним соусом стоит 12.
	w := doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
		"size":     "XL",
		"toppings": []string{"Oreo", "Kinder Bueno"},
		"coulis":   []string{"Nutella"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add to cart status = %d, want %d", w.Code, http.StatusCreated)
	}
	item := decodeBody[model.TiramisuItem](t, w)
	if item.Price != 12 {
		t.Fatalf("item price = %v, want 12", item.Price)
	}

	w = doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{
		"clientName": "Marie", "clientPhone": "06 12 34 56 78", "clientAddress": "12 Rue de la Paix",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("place order status = %d, want %d", w.Code, http.StatusCreated)
	}
	resp := decodeBody[map[string]string](t, w)
	if resp["orderId"] != "CMD-004" {
		t.Fatalf("order id = %s, want CMD-004", resp["orderId"])
	}

	cart := decodeBody[[]model.TiramisuItem](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	if len(cart) != 0 {
		t.Fatalf("cart not cleared after order: %+v", cart)
	}

	// Отслеживание заказа по номеру доступно без входа.
	track := doJSON(t, router, http.MethodGet, "/api/orders/CMD-004", nil)
	if track.Code != http.StatusOK {
		t.Fatalf("track status = %d, want %d", track.Code, http.StatusOK)
	}
	order := decodeBody[model.Order](t, track)
	if order.Total != 12 || order.Status != model.OrderStatusNew {
		t.Fatalf("unexpected tracked order: %+v", order)
	}
}

func TestAddPresetToCart(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/cart/preset", map[string]string{"presetId": "oreo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	item := decodeBody[model.TiramisuItem](t, w)
	// Готовые рецепты продаются по цене каталога, не по формуле.
	if item.Price != 5 || item.Size != model.SizeL {
		t.Fatalf("unexpected preset item: %+v", item)
	}

	missing := doJSON(t, router, http.MethodPost, "/api/cart/preset", map[string]string{"presetId": "nope"})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing preset status = %d, want %d", missing.Code, http.StatusNotFound)
	}
}

func TestAdminRoleGating(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/api/admin/stats", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	kitchen := login(t, router, "cuisine@cremecookies.fr", demoPassword)
	if w := doJSON(t, router, http.MethodGet, "/api/admin/stats", nil, kitchen); w.Code != http.StatusForbidden {
		t.Fatalf("kitchen status = %d, want %d", w.Code, http.StatusForbidden)
	}

	admin := login(t, router, "admin@cremecookies.fr", demoPassword)
	w := doJSON(t, router, http.MethodGet, "/api/admin/stats", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want %d", w.Code, http.StatusOK)
	}

	stats := decodeBody[model.Stats](t, w)
	if stats.TotalOrders != 3 || stats.TotalRevenue != 38 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestKitchenPendingEndpoint(t *testing.T) {
	router := newTestRouter(t)

	kitchen := login(t, router, "cuisine@cremecookies.fr", demoPassword)
	w := doJSON(t, router, http.MethodGet, "/api/kitchen/pending", nil, kitchen)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	orders := decodeBody[[]model.Order](t, w)
	if len(orders) != 1 || orders[0].ID != "CMD-001" {
		t.Fatalf("pending orders = %+v, want only CMD-001", orders)
	}
}

func TestDeliveryAcceptFlow(t *testing.T) {
	router := newTestRouter(t)
	driver := login(t, router, "livreur@cremecookies.fr", demoPassword)

	available := decodeBody[[]model.Order](t, doJSON(t, router, http.MethodGet, "/api/delivery/available", nil, driver))
	if len(available) != 1 || available[0].ID != "CMD-002" {
		t.Fatalf("available = %+v, want only CMD-002", available)
	}

	// Принятие заказа: закрепление за собой плюс переход в delivering.
	if w := doJSON(t, router, http.MethodPatch, "/api/orders/CMD-002/driver", map[string]string{}, driver); w.Code != http.StatusOK {
		t.Fatalf("assign status = %d, want %d", w.Code, http.StatusOK)
	}
	if w := doJSON(t, router, http.MethodPatch, "/api/orders/CMD-002/status", map[string]string{"status": "delivering"}, driver); w.Code != http.StatusOK {
		t.Fatalf("status update = %d, want %d", w.Code, http.StatusOK)
	}

	available = decodeBody[[]model.Order](t, doJSON(t, router, http.MethodGet, "/api/delivery/available", nil, driver))
	if len(available) != 0 {
		t.Fatalf("accepted order still available: %+v", available)
	}

	mine := decodeBody[[]model.Order](t, doJSON(t, router, http.MethodGet, "/api/delivery/deliveries", nil, driver))
	if len(mine) != 1 || mine[0].ID != "CMD-002" || mine[0].AssignedDriver != "Livreur Ali" {
		t.Fatalf("deliveries = %+v", mine)
	}

	// Доставленный заказ попадает в историю курьера.
	if w := doJSON(t, router, http.MethodPatch, "/api/orders/CMD-002/status", map[string]string{"status": "delivered"}, driver); w.Code != http.StatusOK {
		t.Fatalf("status update = %d, want %d", w.Code, http.StatusOK)
	}

	history := decodeBody[[]model.Order](t, doJSON(t, router, http.MethodGet, "/api/delivery/history", nil, driver))
	if len(history) != 2 {
		t.Fatalf("history = %+v, want CMD-002 and seeded CMD-003", history)
	}
}

func TestNotificationsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Новый заказ уведомляет админа и кухню.
	doJSON(t, router, http.MethodPost, "/api/cart/preset", map[string]string{"presetId": "oreo"})
	doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{
		"clientName": "Marie", "clientPhone": "06 12 34 56 78", "clientAddress": "12 Rue de la Paix",
	})

	admin := login(t, router, "admin@cremecookies.fr", demoPassword)
	ns := decodeBody[[]model.Notification](t, doJSON(t, router, http.MethodGet, "/api/notifications", nil, admin))
	if len(ns) != 1 {
		t.Fatalf("admin notifications = %d, want 1", len(ns))
	}

	driver := login(t, router, "livreur@cremecookies.fr", demoPassword)
	if ns := decodeBody[[]model.Notification](t, doJSON(t, router, http.MethodGet, "/api/notifications", nil, driver)); len(ns) != 0 {
		t.Fatalf("driver notifications = %d, want 0", len(ns))
	}

	if w := doJSON(t, router, http.MethodPost, "/api/notifications/"+ns[0].ID+"/read", nil, admin); w.Code != http.StatusOK {
		t.Fatalf("mark read status = %d", w.Code)
	}
}

func TestUpdatePriceAffectsNewItemsOnly(t *testing.T) {
	router := newTestRouter(t)
	admin := login(t, router, "admin@cremecookies.fr", demoPassword)

	before := decodeBody[model.TiramisuItem](t, doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
		"size": "XL", "toppings": []string{"Oreo"},
	}))
	if before.Price != 10 {
		t.Fatalf("price before update = %v, want 10", before.Price)
	}

	if w := doJSON(t, router, http.MethodPut, "/api/admin/prices/XL", map[string]float64{"price": 11}, admin); w.Code != http.StatusOK {
		t.Fatalf("update price status = %d", w.Code)
	}

	after := decodeBody[model.TiramisuItem](t, doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
		"size": "XL", "toppings": []string{"Oreo"},
	}))
	if after.Price != 11 {
		t.Fatalf("price after update = %v, want 11", after.Price)
	}

	cart := decodeBody[[]model.TiramisuItem](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	if cart[0].Price != 10 {
		t.Fatalf("existing cart item repriced: %+v", cart[0])
	}
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/verify-email?token=nope", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDeactivatedUserForbidden(t *testing.T) {
	router := newTestRouter(t)
	admin := login(t, router, "admin@cremecookies.fr", demoPassword)
	kitchen := login(t, router, "cuisine@cremecookies.fr", demoPassword)

	if w := doJSON(t, router, http.MethodPost, "/api/admin/users/kitchen1/toggle", nil, admin); w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", w.Code)
	}

	// Cookie ещё валиден, но деактивированная учётная запись отклоняется.
	if w := doJSON(t, router, http.MethodGet, "/api/kitchen/pending", nil, kitchen); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	// И новый вход невозможен.
	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "cuisine@cremecookies.fr", "password": demoPassword,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAddUserEndpoint(t *testing.T) {
	router := newTestRouter(t)
	admin := login(t, router, "admin@cremecookies.fr", demoPassword)

	w := doJSON(t, router, http.MethodPost, "/api/admin/users", map[string]any{
		"name": "Livreur Bob", "email": "bob@cremecookies.fr", "password": "pw", "role": "delivery",
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	bad := doJSON(t, router, http.MethodPost, "/api/admin/users", map[string]any{
		"name": "X", "email": "bad", "password": "pw", "role": "delivery",
	}, admin)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("invalid email status = %d, want %d", bad.Code, http.StatusBadRequest)
	}
}

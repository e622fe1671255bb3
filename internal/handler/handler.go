// Package handler содержит HTTP-обработчики API витрины Crème & Cookies.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cremecookies/storefront-system/internal/middleware"
	"github.com/cremecookies/storefront-system/internal/model"
	"github.com/cremecookies/storefront-system/internal/store"
	"github.com/cremecookies/storefront-system/internal/validation"
	"github.com/cremecookies/storefront-system/internal/verification"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Authenticate(email, password string) (model.User, error)
	RegisterClient(name, email, password string) (model.User, error)
	AddUser(name, email, password string, role model.Role, active bool) model.User
	ToggleUserActive(id string)
	UserByID(id string) (model.User, bool)
	Users() []model.User

	StartVerification(ctx context.Context, email, name string) error
	VerifyEmail(token string) (string, error)
	SendPromo(title, message, code string) int

	Toppings() []model.Topping
	CoulisList() []model.Coulis
	Prices() map[model.Size]float64
	Presets() []model.Preset
	ToggleTopping(id string)
	ToggleCoulis(id string)
	UpdatePrice(size model.Size, price float64)
	PriceFor(size model.Size, toppings, coulis []string) float64

	Cart() []model.TiramisuItem
	AddToCart(item model.TiramisuItem)
	RemoveFromCart(id string)
	UpdateCartItem(id string, item model.TiramisuItem)
	ClearCart()

	PlaceOrder(clientName, clientPhone, clientAddress, notes string) (string, error)
	Orders() []model.Order
	OrderByID(id string) (model.Order, bool)
	UpdateOrderStatus(orderID string, status model.OrderStatus)
	AssignDriver(orderID, driverName string)
	DeleteOrder(orderID string)
	KitchenPending() []model.Order
	DeliveryAvailable() []model.Order
	DriverDeliveries(name string) []model.Order
	DriverHistory(name string) []model.Order

	NotificationsFor(role model.Role) []model.Notification
	MarkNotificationRead(id string)

	Favorites() []model.TiramisuItem
	AddFavorite(item model.TiramisuItem) model.TiramisuItem
	RemoveFavorite(id string)

	LoyaltyInfo(userID string) model.LoyaltyInfo
	Stats() model.Stats
}

// Handler реализует HTTP-обработчики API витрины.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// currentUser возвращает пользователя текущего запроса. Используется
// только за auth middleware.
func (h *Handler) currentUser(r *http.Request) (model.User, bool) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return model.User{}, false
	}
	return h.service.UserByID(id)
}

// --- Аутентификация ---

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	Active bool       `json:"active"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Active: u.Active}
}

// Login выполняет аутентификацию пользователя и установку cookie.
// Неизвестный email и неверный пароль дают одинаковый ответ.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(req.Email, req.Password)
	if err != nil {
		http.Error(w, "incorrect email or password", http.StatusUnauthorized)
		return
	}

	h.authMiddleware.SetAuthCookie(w, user.ID)
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout завершает сеанс, сбрасывая cookie авторизации.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

// Register регистрирует клиента. Успешная регистрация одновременно
// аутентифицирует: cookie устанавливается сразу.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req.Name = validation.NormalizeName(req.Name)
	if req.Name == "" || req.Password == "" || !validation.IsValidEmail(req.Email) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.RegisterClient(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			http.Error(w, "email already used", http.StatusConflict)
			return
		}
		h.logger.Error("register client error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, user.ID)
	h.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Me возвращает пользователя текущего сеанса.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// --- Каталог ---

type catalogResponse struct {
	Toppings []model.Topping        `json:"toppings"`
	Coulis   []model.Coulis         `json:"coulis"`
	Prices   map[model.Size]float64 `json:"prices"`
	Presets  []model.Preset         `json:"presets"`
}

// Catalog возвращает каталог целиком: топпинги, соусы, цены и готовые
// рецепты. Скрытые позиции отдаются с active=false, фильтрация остаётся
// на слое отображения.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, catalogResponse{
		Toppings: h.service.Toppings(),
		Coulis:   h.service.CoulisList(),
		Prices:   h.service.Prices(),
		Presets:  h.service.Presets(),
	})
}

// ToggleTopping переключает видимость топпинга; неизвестный
// идентификатор — тихий no-op.
func (h *Handler) ToggleTopping(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleTopping(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// ToggleCoulis переключает видимость соуса.
func (h *Handler) ToggleCoulis(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleCoulis(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

type updatePriceRequest struct {
	Price float64 `json:"price"`
}

// UpdatePrice устанавливает базовую цену размера. Существующие позиции
// корзины и заказов не переоцениваются.
func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	size := chi.URLParam(r, "size")
	if !validation.IsValidSize(size) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Price < 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.UpdatePrice(model.Size(size), req.Price)
	w.WriteHeader(http.StatusOK)
}

// --- Корзина ---

type cartItemRequest struct {
	ID       string   `json:"id"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
	Coulis   []string `json:"coulis"`
}

// buildCartItem собирает позицию корзины из запроса, вычисляя цену по
// текущим базовым ценам. Идентификатор задаёт вызывающий; пустой
// заменяется новым.
func (h *Handler) buildCartItem(req cartItemRequest) (model.TiramisuItem, bool) {
	if !validation.IsValidSize(req.Size) {
		return model.TiramisuItem{}, false
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	size := model.Size(req.Size)
	return model.TiramisuItem{
		ID:       id,
		Size:     size,
		Toppings: req.Toppings,
		Coulis:   req.Coulis,
		Price:    h.service.PriceFor(size, req.Toppings, req.Coulis),
	}, true
}

// GetCart возвращает содержимое корзины.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Cart())
}

// AddToCart добавляет сконфигурированную позицию в корзину.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	item, ok := h.buildCartItem(req)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.AddToCart(item)
	h.writeJSON(w, http.StatusCreated, item)
}

type presetRequest struct {
	PresetID string `json:"presetId"`
}

// AddPresetToCart добавляет готовый рецепт в корзину по цене каталога.
func (h *Handler) AddPresetToCart(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	for _, p := range h.service.Presets() {
		if p.ID == req.PresetID {
			item := model.TiramisuItem{
				ID:       uuid.NewString(),
				Size:     p.Size,
				Toppings: p.Toppings,
				Coulis:   p.Coulis,
				Price:    p.Price,
			}
			h.service.AddToCart(item)
			h.writeJSON(w, http.StatusCreated, item)
			return
		}
	}

	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// UpdateCartItem заменяет позицию корзины новой конфигурацией с
// пересчитанной ценой.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	req.ID = id
	item, ok := h.buildCartItem(req)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.UpdateCartItem(id, item)
	h.writeJSON(w, http.StatusOK, item)
}

// RemoveFromCart удаляет позицию корзины; отсутствующая игнорируется.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveFromCart(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// ClearCart опустошает корзину.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCart()
	w.WriteHeader(http.StatusOK)
}

// --- Заказы ---

type placeOrderRequest struct {
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
	Notes         string `json:"notes"`
}

type placeOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PlaceOrder оформляет заказ из корзины. Пустая корзина — ошибка
// валидации, не сбой.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req.ClientName = validation.NormalizeName(req.ClientName)
	if req.ClientName == "" || req.ClientAddress == "" || !validation.IsValidPhone(req.ClientPhone) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	orderID, err := h.service.PlaceOrder(req.ClientName, req.ClientPhone, req.ClientAddress, req.Notes)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusBadRequest)
			return
		}
		h.logger.Error("place order error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, placeOrderResponse{OrderID: orderID})
}

// GetOrders возвращает полный список заказов, новые первыми.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Orders())
}

// GetOrder возвращает заказ по номеру; используется страницей отслеживания.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.service.OrderByID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus безусловно перезаписывает статус заказа.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !validation.IsValidOrderStatus(req.Status) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.UpdateOrderStatus(chi.URLParam(r, "id"), model.OrderStatus(req.Status))
	w.WriteHeader(http.StatusOK)
}

type assignDriverRequest struct {
	DriverName string `json:"driverName"`
}

// AssignDriver закрепляет курьера за заказом. Курьерская роль
// закрепляет только себя; админ — любого.
func (h *Handler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	var req assignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	driverName := req.DriverName
	if user.Role == model.RoleDelivery {
		driverName = user.Name
	}
	if driverName == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.AssignDriver(chi.URLParam(r, "id"), driverName)
	w.WriteHeader(http.StatusOK)
}

// DeleteOrder безвозвратно удаляет заказ.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteOrder(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// KitchenPending возвращает заказы для панели кухни: новые и готовящиеся.
func (h *Handler) KitchenPending(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.KitchenPending())
}

// DeliveryAvailable возвращает готовые к выдаче заказы для панели курьера.
func (h *Handler) DeliveryAvailable(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.DeliveryAvailable())
}

// DriverDeliveries возвращает заказы текущего курьера в пути.
func (h *Handler) DriverDeliveries(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.DriverDeliveries(user.Name))
}

// DriverHistory возвращает доставленные заказы текущего курьера.
func (h *Handler) DriverHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.DriverHistory(user.Name))
}

// --- Уведомления ---

// GetNotifications возвращает уведомления, адресованные роли текущего
// пользователя.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.NotificationsFor(user.Role))
}

// MarkNotificationRead помечает уведомление прочитанным для всех.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	h.service.MarkNotificationRead(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// --- Избранное ---

// GetFavorites возвращает сохранённые конфигурации.
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Favorites())
}

// AddFavorite сохраняет конфигурацию в избранное.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	item, ok := h.buildCartItem(req)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, h.service.AddFavorite(item))
}

// RemoveFavorite удаляет конфигурацию из избранного.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.service.RemoveFavorite(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// --- Лояльность и статистика ---

// Loyalty возвращает состояние программы лояльности текущего пользователя.
func (h *Handler) Loyalty(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.LoyaltyInfo(user.ID))
}

// Stats возвращает агрегированную статистику для панели администратора.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Stats())
}

// --- Управление пользователями ---

type addUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

// GetUsers возвращает все учётные записи.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users := h.service.Users()
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// AddUser создаёт пользователя с произвольной ролью; приветственное
// письмо уходит в фоне и не влияет на результат запроса.
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req.Name = validation.NormalizeName(req.Name)
	if req.Name == "" || req.Password == "" || !validation.IsValidEmail(req.Email) || !validation.IsValidRole(req.Role) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user := h.service.AddUser(req.Name, req.Email, req.Password, model.Role(req.Role), active)
	h.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// ToggleUserActive переключает активность учётной записи.
func (h *Handler) ToggleUserActive(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleUserActive(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

type promoRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type promoResponse struct {
	Recipients int `json:"recipients"`
}

// SendPromo рассылает промо-письмо активным клиентам.
func (h *Handler) SendPromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Message == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	count := h.service.SendPromo(req.Title, req.Message, req.Code)
	h.writeJSON(w, http.StatusAccepted, promoResponse{Recipients: count})
}

// --- Подтверждение email ---

type verifyEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type verifyEmailResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

// StartVerification выдаёт токен и отправляет письмо подтверждения.
// В отличие от фоновой отправки при регистрации, здесь сбой отправки
// возвращается вызывающему.
func (h *Handler) StartVerification(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Name == "" || !validation.IsValidEmail(req.Email) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.StartVerification(r.Context(), req.Email, req.Name); err != nil {
		h.logger.Error("start verification error", zap.Error(err), zap.String("email", req.Email))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, verifyEmailResponse{Success: true, Message: "Verification email sent"})
}

// VerifyEmail подтверждает токен из ссылки в письме.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email, err := h.service.VerifyEmail(token)
	if err != nil {
		if errors.Is(err, verification.ErrInvalidToken) {
			http.Error(w, "invalid or expired token", http.StatusBadRequest)
			return
		}
		h.logger.Error("verify email error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, verifyEmailResponse{Success: true, Email: email, Message: "Email verified successfully"})
}

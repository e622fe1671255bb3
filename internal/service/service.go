// Package service реализует бизнес-логику витрины Crème & Cookies.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cremecookies/storefront-system/internal/mailer"
	"github.com/cremecookies/storefront-system/internal/model"
	"github.com/cremecookies/storefront-system/internal/store"
	"github.com/cremecookies/storefront-system/internal/verification"
)

// Sender описывает контракт отправки писем, используемый сервисом.
type Sender interface {
	Send(ctx context.Context, msg mailer.Email) error
}

// sendTimeout ограничивает время одной фоновой отправки письма.
const sendTimeout = 10 * time.Second

// Service содержит бизнес-логику витрины: состояние приложения плюс
// побочные эффекты отправки писем. Отправка выполняется асинхронно и
// никогда не откатывает уже зафиксированную мутацию состояния.
type Service struct {
	store    *store.Store
	sender   Sender
	verifier *verification.Verifier
	baseURL  string
	logger   *zap.Logger

	emailWG sync.WaitGroup
}

// NewService создаёт сервис над хранилищем состояния. Sender может быть
// nil: тогда письма не отправляются, а действия выполняются как обычно.
func NewService(st *store.Store, sender Sender, verifier *verification.Verifier, baseURL string, logger *zap.Logger) *Service {
	return &Service{
		store:    st,
		sender:   sender,
		verifier: verifier,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Store возвращает хранилище состояния приложения.
func (s *Service) Store() *store.Store {
	return s.store
}

// --- Аутентификация и пользователи ---

// Authenticate проверяет учётные данные и возвращает пользователя.
func (s *Service) Authenticate(email, password string) (model.User, error) {
	return s.store.Authenticate(email, password)
}

// RegisterClient регистрирует клиента и запускает фоновую отправку
// письма подтверждения. Сбой отправки логируется и не отменяет
// регистрацию.
func (s *Service) RegisterClient(name, email, password string) (model.User, error) {
	user, err := s.store.RegisterClient(name, email, password)
	if err != nil {
		return model.User{}, err
	}

	s.sendAsync(func(ctx context.Context) error {
		token, err := s.verifier.Issue(user.Email, user.Name)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		url := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
		return s.sender.Send(ctx, mailer.Verification(user.Email, user.Name, url))
	}, "verification email", user.Email)

	return user, nil
}

// AddUser создаёт пользователя с произвольной ролью и запускает фоновую
// отправку приветственного письма. Создание пользователя не зависит от
// исхода отправки.
func (s *Service) AddUser(name, email, password string, role model.Role, active bool) model.User {
	user := s.store.AddUser(name, email, password, role, active)

	if email != "" {
		s.sendAsync(func(ctx context.Context) error {
			return s.sender.Send(ctx, mailer.Welcome(email, name))
		}, "welcome email", email)
	}

	return user
}

// ToggleUserActive переключает активность учётной записи.
func (s *Service) ToggleUserActive(id string) {
	s.store.ToggleUserActive(id)
}

// UserByID возвращает пользователя по идентификатору.
func (s *Service) UserByID(id string) (model.User, bool) {
	return s.store.UserByID(id)
}

// Users возвращает все учётные записи.
func (s *Service) Users() []model.User {
	return s.store.Users()
}

// --- Подтверждение email ---

// StartVerification выдаёт токен и синхронно отправляет письмо
// подтверждения. Используется страницей входа при повторной отправке.
func (s *Service) StartVerification(ctx context.Context, email, name string) error {
	token, err := s.verifier.Issue(email, name)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	if s.sender == nil {
		return fmt.Errorf("mailer not configured")
	}

	url := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	if err := s.sender.Send(ctx, mailer.Verification(email, name, url)); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	return nil
}

// VerifyEmail подтверждает токен и возвращает связанный email.
func (s *Service) VerifyEmail(token string) (string, error) {
	return s.verifier.Verify(token)
}

// --- Рассылки ---

// SendPromo запускает фоновую рассылку промо-письма всем активным
// клиентам и возвращает количество адресатов.
func (s *Service) SendPromo(title, message, code string) int {
	recipients := make([]model.User, 0)
	for _, u := range s.store.Users() {
		if u.Role == model.RoleClient && u.Active && u.Email != "" {
			recipients = append(recipients, u)
		}
	}

	for _, u := range recipients {
		to := u.Email
		s.sendAsync(func(ctx context.Context) error {
			return s.sender.Send(ctx, mailer.Promo(to, title, message, code))
		}, "promo email", to)
	}

	return len(recipients)
}

// sendAsync выполняет отправку письма в фоне: действие, породившее
// письмо, завершается и становится видимым до подтверждения доставки.
func (s *Service) sendAsync(send func(context.Context) error, kind, to string) {
	if s.sender == nil {
		return
	}

	s.emailWG.Add(1)
	go func() {
		defer s.emailWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			s.logger.Error("send email failed",
				zap.String("kind", kind),
				zap.String("to", to),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("email sent", zap.String("kind", kind), zap.String("to", to))
	}()
}

// waitEmails дожидается завершения фоновых отправок.
func (s *Service) waitEmails() {
	s.emailWG.Wait()
}

// --- Каталог и цены ---

// Toppings возвращает список топпингов.
func (s *Service) Toppings() []model.Topping { return s.store.Toppings() }

// CoulisList возвращает список соусов.
func (s *Service) CoulisList() []model.Coulis { return s.store.CoulisList() }

// Prices возвращает базовые цены по размерам.
func (s *Service) Prices() map[model.Size]float64 { return s.store.Prices() }

// Presets возвращает каталог готовых рецептов.
func (s *Service) Presets() []model.Preset { return s.store.Presets() }

// ToggleTopping переключает видимость топпинга.
func (s *Service) ToggleTopping(id string) { s.store.ToggleTopping(id) }

// ToggleCoulis переключает видимость соуса.
func (s *Service) ToggleCoulis(id string) { s.store.ToggleCoulis(id) }

// UpdatePrice устанавливает базовую цену размера.
func (s *Service) UpdatePrice(size model.Size, price float64) { s.store.UpdatePrice(size, price) }

// PriceFor вычисляет цену конфигурации по текущим ценам.
func (s *Service) PriceFor(size model.Size, toppings, coulis []string) float64 {
	return s.store.PriceFor(size, toppings, coulis)
}

// --- Корзина ---

// Cart возвращает содержимое корзины.
func (s *Service) Cart() []model.TiramisuItem { return s.store.Cart() }

// AddToCart добавляет позицию в корзину.
func (s *Service) AddToCart(item model.TiramisuItem) { s.store.AddToCart(item) }

// RemoveFromCart удаляет позицию из корзины.
func (s *Service) RemoveFromCart(id string) { s.store.RemoveFromCart(id) }

// UpdateCartItem заменяет позицию корзины.
func (s *Service) UpdateCartItem(id string, item model.TiramisuItem) {
	s.store.UpdateCartItem(id, item)
}

// ClearCart опустошает корзину.
func (s *Service) ClearCart() { s.store.ClearCart() }

// --- Заказы ---

// PlaceOrder оформляет заказ из корзины.
func (s *Service) PlaceOrder(clientName, clientPhone, clientAddress, notes string) (string, error) {
	return s.store.PlaceOrder(clientName, clientPhone, clientAddress, notes)
}

// Orders возвращает все заказы.
func (s *Service) Orders() []model.Order { return s.store.Orders() }

// OrderByID возвращает заказ по идентификатору.
func (s *Service) OrderByID(id string) (model.Order, bool) { return s.store.OrderByID(id) }

// UpdateOrderStatus перезаписывает статус заказа.
func (s *Service) UpdateOrderStatus(orderID string, status model.OrderStatus) {
	s.store.UpdateOrderStatus(orderID, status)
}

// AssignDriver закрепляет курьера за заказом.
func (s *Service) AssignDriver(orderID, driverName string) {
	s.store.AssignDriver(orderID, driverName)
}

// DeleteOrder удаляет заказ.
func (s *Service) DeleteOrder(orderID string) { s.store.DeleteOrder(orderID) }

// KitchenPending возвращает заказы, ожидающие кухню.
func (s *Service) KitchenPending() []model.Order { return s.store.KitchenPending() }

// DeliveryAvailable возвращает заказы, доступные курьерам.
func (s *Service) DeliveryAvailable() []model.Order { return s.store.DeliveryAvailable() }

// DriverDeliveries возвращает заказы курьера в пути.
func (s *Service) DriverDeliveries(name string) []model.Order { return s.store.DriverDeliveries(name) }

// DriverHistory возвращает доставленные заказы курьера.
func (s *Service) DriverHistory(name string) []model.Order { return s.store.DriverHistory(name) }

// --- Уведомления, избранное, лояльность, статистика ---

// NotificationsFor возвращает уведомления роли.
func (s *Service) NotificationsFor(role model.Role) []model.Notification {
	return s.store.NotificationsFor(role)
}

// MarkNotificationRead помечает уведомление прочитанным.
func (s *Service) MarkNotificationRead(id string) { s.store.MarkNotificationRead(id) }

// Favorites возвращает сохранённые конфигурации.
func (s *Service) Favorites() []model.TiramisuItem { return s.store.Favorites() }

// AddFavorite сохраняет конфигурацию в избранное.
func (s *Service) AddFavorite(item model.TiramisuItem) model.TiramisuItem {
	return s.store.AddFavorite(item)
}

// RemoveFavorite удаляет конфигурацию из избранного.
func (s *Service) RemoveFavorite(id string) { s.store.RemoveFavorite(id) }

// LoyaltyInfo возвращает состояние программы лояльности.
func (s *Service) LoyaltyInfo(userID string) model.LoyaltyInfo { return s.store.LoyaltyInfo(userID) }

// Stats возвращает агрегированную статистику по заказам.
func (s *Service) Stats() model.Stats { return s.store.Stats() }

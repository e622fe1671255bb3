// Package store реализует центральное состояние приложения витрины:
// каталог продуктов, корзину, заказы, пользователей, уведомления,
// избранное и производную статистику.
package store

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cremecookies/storefront-system/internal/model"
)

// ErrEmptyCart возвращается при попытке оформить заказ с пустой корзиной.
var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmailTaken возвращается при регистрации на уже занятый email.
	ErrEmailTaken = errors.New("email already used")
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	// либо деактивированной учётной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// maxNotifications ограничивает ленту уведомлений: старейшие записи
// вытесняются при переполнении.
const maxNotifications = 50

// Store хранит всё состояние приложения в памяти процесса.
// Мутации атомарны относительно друг друга; наблюдатели получают
// сигнал после каждой мутации.
type Store struct {
	mu sync.Mutex

	toppings      []model.Topping
	coulisList    []model.Coulis
	prices        map[model.Size]float64
	presets       []model.Preset
	cart          []model.TiramisuItem
	orders        []model.Order
	users         []model.User
	notifications []model.Notification
	favorites     []model.TiramisuItem
	orderSeq      int

	subMu       sync.Mutex
	subscribers map[int]func()
	subSeq      int
}

// New создаёт пустое хранилище. Демонстрационные данные загружаются
// отдельно методом Seed.
func New() *Store {
	return &Store{
		prices: map[model.Size]float64{
			model.SizeL:  5,
			model.SizeXL: 10,
		},
		subscribers: make(map[int]func()),
	}
}

// Subscribe регистрирует наблюдателя, вызываемого после каждой мутации.
// Возвращаемая функция снимает подписку.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.subSeq++
	id := s.subSeq
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify вызывает наблюдателей вне основной блокировки хранилища.
func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// HashPassword возвращает солёный хеш пароля. Email играет роль соли,
// поэтому одинаковые пароли разных пользователей дают разные хеши.
func HashPassword(email, password string) []byte {
	sum := sha256.Sum256([]byte(email + ":" + password))
	return sum[:]
}

// CalculatePrice вычисляет цену конфигурации: базовая цена размера плюс
// одна денежная единица за каждый выбор сверх первого, топпинги и соусы
// считаются вместе. Ноль выборов даёт базовую цену.
func CalculatePrice(size model.Size, toppings, coulis []string, prices map[model.Size]float64) float64 {
	extras := len(toppings) + len(coulis) - 1
	if extras < 0 {
		extras = 0
	}
	return prices[size] + float64(extras)
}

// --- Каталог и цены ---

// Toppings возвращает полный список топпингов, включая скрытые.
func (s *Store) Toppings() []model.Topping {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Topping, len(s.toppings))
	copy(out, s.toppings)
	return out
}

// CoulisList возвращает полный список соусов, включая скрытые.
func (s *Store) CoulisList() []model.Coulis {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Coulis, len(s.coulisList))
	copy(out, s.coulisList)
	return out
}

// Prices возвращает текущие базовые цены по размерам.
func (s *Store) Prices() map[model.Size]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[model.Size]float64, len(s.prices))
	for k, v := range s.prices {
		out[k] = v
	}
	return out
}

// Presets возвращает каталог готовых рецептов.
func (s *Store) Presets() []model.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// ToggleTopping переключает видимость топпинга в конфигураторе.
// Неизвестный идентификатор молча игнорируется; уже размещённые
// заказы не затрагиваются.
func (s *Store) ToggleTopping(id string) {
	s.mu.Lock()
	for i := range s.toppings {
		if s.toppings[i].ID == id {
			s.toppings[i].Active = !s.toppings[i].Active
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleCoulis переключает видимость соуса в конфигураторе.
func (s *Store) ToggleCoulis(id string) {
	s.mu.Lock()
	for i := range s.coulisList {
		if s.coulisList[i].ID == id {
			s.coulisList[i].Active = !s.coulisList[i].Active
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// UpdatePrice устанавливает базовую цену размера. Действует только на
// позиции, цена которых вычисляется после изменения.
func (s *Store) UpdatePrice(size model.Size, price float64) {
	s.mu.Lock()
	s.prices[size] = price
	s.mu.Unlock()
	s.notify()
}

// PriceFor вычисляет цену конфигурации по текущим базовым ценам.
func (s *Store) PriceFor(size model.Size, toppings, coulis []string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalculatePrice(size, toppings, coulis, s.prices)
}

// --- Корзина ---

// Cart возвращает содержимое корзины текущего сеанса.
func (s *Store) Cart() []model.TiramisuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TiramisuItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddToCart добавляет позицию в корзину. Идентификатор задаёт вызывающий.
func (s *Store) AddToCart(item model.TiramisuItem) {
	s.mu.Lock()
	s.cart = append(s.cart, item)
	s.mu.Unlock()
	s.notify()
}

// RemoveFromCart удаляет позицию по идентификатору, отсутствующая
// позиция игнорируется.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	kept := s.cart[:0]
	for _, it := range s.cart {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.cart = kept
	s.mu.Unlock()
	s.notify()
}

// UpdateCartItem целиком заменяет позицию с указанным идентификатором.
// Цену новой позиции вычисляет вызывающий, хранилище её не пересчитывает.
func (s *Store) UpdateCartItem(id string, item model.TiramisuItem) {
	s.mu.Lock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i] = item
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// ClearCart опустошает корзину.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
	s.notify()
}

// --- Заказы ---

// Orders возвращает все заказы, новые первыми.
func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID возвращает заказ по идентификатору.
func (s *Store) OrderByID(id string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// PlaceOrder оформляет заказ из содержимого корзины: присваивает
// следующий последовательный номер CMD-NNN, фиксирует сумму как сумму
// цен позиций, очищает корзину и уведомляет админа и кухню.
// Пустая корзина даёт ErrEmptyCart.
func (s *Store) PlaceOrder(clientName, clientPhone, clientAddress, notes string) (string, error) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return "", ErrEmptyCart
	}

	s.orderSeq++
	orderID := fmt.Sprintf("CMD-%03d", s.orderSeq)

	items := make([]model.TiramisuItem, len(s.cart))
	copy(items, s.cart)

	total := 0.0
	for _, it := range items {
		total += it.Price
	}

	order := model.Order{
		ID:            orderID,
		Items:         items,
		Total:         total,
		Status:        model.OrderStatusNew,
		ClientName:    clientName,
		ClientPhone:   clientPhone,
		ClientAddress: clientAddress,
		CreatedAt:     time.Now(),
		Notes:         notes,
	}

	s.orders = append([]model.Order{order}, s.orders...)
	s.cart = nil

	s.addNotificationLocked(
		fmt.Sprintf("Nouvelle commande %s de %s", orderID, clientName),
		model.NotificationInfo,
		[]model.Role{model.RoleAdmin, model.RoleKitchen},
	)
	s.mu.Unlock()
	s.notify()

	return orderID, nil
}

// UpdateOrderStatus безусловно перезаписывает статус заказа и уведомляет
// персонал. Переходы не валидируются: любой статус может следовать за
// любым другим.
func (s *Store) UpdateOrderStatus(orderID string, status model.OrderStatus) {
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			break
		}
	}

	typ := model.NotificationInfo
	if status == model.OrderStatusDelivered {
		typ = model.NotificationSuccess
	}
	s.addNotificationLocked(
		fmt.Sprintf("Commande %s : %s", orderID, model.StatusLabels[status]),
		typ,
		[]model.Role{model.RoleAdmin, model.RoleKitchen, model.RoleDelivery},
	)
	s.mu.Unlock()
	s.notify()
}

// AssignDriver закрепляет курьера за заказом. Смена статуса на
// delivering остаётся на вызывающем.
func (s *Store) AssignDriver(orderID, driverName string) {
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].AssignedDriver = driverName
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// DeleteOrder безвозвратно удаляет заказ без уведомления.
func (s *Store) DeleteOrder(orderID string) {
	s.mu.Lock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.mu.Unlock()
	s.notify()
}

// KitchenPending возвращает заказы, ожидающие кухню: новые и готовящиеся.
func (s *Store) KitchenPending() []model.Order {
	return s.filterOrders(func(o model.Order) bool {
		return o.Status == model.OrderStatusNew || o.Status == model.OrderStatusPreparing
	})
}

// DeliveryAvailable возвращает заказы, доступные курьерам: готовые к выдаче.
func (s *Store) DeliveryAvailable() []model.Order {
	return s.filterOrders(func(o model.Order) bool {
		return o.Status == model.OrderStatusReady
	})
}

// DriverDeliveries возвращает заказы в пути, закреплённые за курьером.
func (s *Store) DriverDeliveries(driverName string) []model.Order {
	return s.filterOrders(func(o model.Order) bool {
		return o.Status == model.OrderStatusDelivering && o.AssignedDriver == driverName
	})
}

// DriverHistory возвращает доставленные заказы курьера.
func (s *Store) DriverHistory(driverName string) []model.Order {
	return s.filterOrders(func(o model.Order) bool {
		return o.Status == model.OrderStatusDelivered && o.AssignedDriver == driverName
	})
}

func (s *Store) filterOrders(keep func(model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// --- Пользователи ---

// Users возвращает все учётные записи.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// UserByID возвращает пользователя по идентификатору.
func (s *Store) UserByID(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// Authenticate проверяет email и пароль. Успех возможен только для
// активной учётной записи; сравнение хешей выполняется за постоянное
// время. Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Store) Authenticate(email, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hashed := HashPassword(email, password)
	for _, u := range s.users {
		if u.Email == email && u.Active && hmac.Equal(u.PasswordHash, hashed) {
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

// RegisterClient создаёт клиентскую учётную запись. Email должен быть
// свободен; проверка выполняется без нормализации регистра, как и вход.
func (s *Store) RegisterClient(name, email, password string) (model.User, error) {
	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return model.User{}, ErrEmailTaken
		}
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(email, password),
		Role:         model.RoleClient,
		Active:       true,
	}
	s.users = append(s.users, user)
	s.mu.Unlock()
	s.notify()

	return user, nil
}

// AddUser создаёт пользователя с произвольной ролью. Занятость email
// здесь не проверяется: уникальность гарантируется только на пути
// самостоятельной регистрации.
func (s *Store) AddUser(name, email, password string, role model.Role, active bool) model.User {
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(email, password),
		Role:         role,
		Active:       active,
	}

	s.mu.Lock()
	s.users = append(s.users, user)
	s.mu.Unlock()
	s.notify()

	return user
}

// ToggleUserActive переключает активность учётной записи. Деактивированный
// пользователь не может войти, но его заказы и упоминания сохраняются.
func (s *Store) ToggleUserActive(id string) {
	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Active = !s.users[i].Active
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// --- Уведомления ---

// AddNotification добавляет уведомление для перечисленных ролей.
func (s *Store) AddNotification(message string, typ model.NotificationType, forRoles []model.Role) {
	s.mu.Lock()
	s.addNotificationLocked(message, typ, forRoles)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) addNotificationLocked(message string, typ model.NotificationType, forRoles []model.Role) {
	n := model.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		Timestamp: time.Now(),
		ForRoles:  forRoles,
	}
	s.notifications = append([]model.Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
}

// NotificationsFor возвращает уведомления, адресованные роли, новые первыми.
func (s *Store) NotificationsFor(role model.Role) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, 0)
	for _, n := range s.notifications {
		for _, r := range n.ForRoles {
			if r == role {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// MarkNotificationRead помечает уведомление прочитанным. Состояние
// глобально: прочитанное одним сотрудником прочитано для всех.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// --- Избранное ---

// Favorites возвращает сохранённые конфигурации. Список общий: владелец
// не фиксируется.
func (s *Store) Favorites() []model.TiramisuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TiramisuItem, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// AddFavorite сохраняет конфигурацию с новым идентификатором.
func (s *Store) AddFavorite(item model.TiramisuItem) model.TiramisuItem {
	item.ID = uuid.NewString()

	s.mu.Lock()
	s.favorites = append(s.favorites, item)
	s.mu.Unlock()
	s.notify()

	return item
}

// RemoveFavorite удаляет конфигурацию из избранного.
func (s *Store) RemoveFavorite(id string) {
	s.mu.Lock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	s.mu.Unlock()
	s.notify()
}

// --- Лояльность ---

// LoyaltyInfo вычисляет состояние программы лояльности. Уровни Bronze,
// Argent и Or сменяются каждые 6 доставленных заказов и зацикливаются
// каждые 18. Идентификатор пользователя пока не используется: прогресс
// считается по всем доставленным заказам хранилища.
func (s *Store) LoyaltyInfo(userID string) model.LoyaltyInfo {
	s.mu.Lock()
	delivered := 0
	for _, o := range s.orders {
		if o.Status == model.OrderStatusDelivered {
			delivered++
		}
	}
	s.mu.Unlock()

	pos := delivered % 18
	info := model.LoyaltyInfo{TotalOrders: delivered}

	switch {
	case pos < 6:
		info.CurrentTier = "Bronze"
		info.Emoji = "🥉"
		info.CurrentProgress = pos
		info.NextReward = "🍪 1 Cookie"
	case pos < 12:
		info.CurrentTier = "Argent"
		info.Emoji = "🥈"
		info.CurrentProgress = pos - 6
		info.NextReward = "🍰 1 Mini Tiramisu"
	default:
		info.CurrentTier = "Or"
		info.Emoji = "🥇"
		info.CurrentProgress = pos - 12
		info.NextReward = "🎂 1 Tiramisu XL au choix"
	}

	return info
}

// --- Статистика ---

// Stats пересчитывает агрегаты по всем заказам при каждом вызове.
// Распределение размеров считается по позициям, не по заказам.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.Stats{
		TotalOrders: len(s.orders),
		OrdersByStatus: map[model.OrderStatus]int{
			model.OrderStatusNew:        0,
			model.OrderStatusPreparing:  0,
			model.OrderStatusReady:      0,
			model.OrderStatusDelivering: 0,
			model.OrderStatusDelivered:  0,
		},
	}

	toppingCount := make(map[string]int)
	coulisCount := make(map[string]int)

	for _, o := range s.orders {
		stats.TotalRevenue += o.Total
		stats.OrdersByStatus[o.Status]++

		for _, it := range o.Items {
			if it.Size == model.SizeL {
				stats.SizeDistribution.L++
			} else {
				stats.SizeDistribution.XL++
			}
			for _, t := range it.Toppings {
				toppingCount[t]++
			}
			for _, c := range it.Coulis {
				coulisCount[c]++
			}
		}
	}

	stats.PopularToppings = rankCounts(toppingCount)
	stats.PopularCoulis = rankCounts(coulisCount)

	return stats
}

// rankCounts превращает счётчики в список, отсортированный по убыванию
// количества; при равенстве порядок задаёт название.
func rankCounts(counts map[string]int) []model.NameCount {
	out := make([]model.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, model.NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	return out
}

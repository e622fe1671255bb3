// Package model содержит доменные сущности витрины Crème & Cookies.
package model

import "time"

// Size описывает размер тирамису.
type Size string

const (
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// OrderStatus описывает этап выполнения заказа.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// StatusLabels содержит отображаемые названия статусов заказа.
var StatusLabels = map[OrderStatus]string{
	OrderStatusNew:        "Nouvelle",
	OrderStatusPreparing:  "En préparation",
	OrderStatusReady:      "Prête",
	OrderStatusDelivering: "En livraison",
	OrderStatusDelivered:  "Livrée",
}

// Role описывает роль пользователя системы.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleKitchen  Role = "kitchen"
	RoleDelivery Role = "delivery"
	RoleClient   Role = "client"
)

// NotificationType описывает тип уведомления.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// Topping представляет топпинг из каталога продуктов.
type Topping struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Active bool   `json:"active"`
}

// Coulis представляет соус из каталога продуктов.
type Coulis struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Active bool   `json:"active"`
}

// TiramisuItem представляет сконфигурированный тирамису в корзине или заказе.
// Топпинги и соусы хранятся по отображаемым названиям, не по идентификаторам.
type TiramisuItem struct {
	ID       string   `json:"id"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
	Coulis   []string `json:"coulis"`
	Price    float64  `json:"price"`
}

// Order представляет заказ клиента.
type Order struct {
	ID             string         `json:"id"`
	Items          []TiramisuItem `json:"items"`
	Total          float64        `json:"total"`
	Status         OrderStatus    `json:"status"`
	ClientName     string         `json:"clientName"`
	ClientPhone    string         `json:"clientPhone"`
	ClientAddress  string         `json:"clientAddress"`
	CreatedAt      time.Time      `json:"createdAt"`
	AssignedDriver string         `json:"assignedDriver,omitempty"`
	Notes          string         `json:"notes"`
}

// User представляет учётную запись пользователя.
// Пароль хранится в виде солёного хеша, а не открытым текстом.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// Notification представляет уведомление, видимое перечисленным ролям.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	ForRoles  []Role           `json:"forRoles"`
}

// Preset представляет готовый рецепт тирамису из каталога.
type Preset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Size        Size     `json:"size"`
	Toppings    []string `json:"toppings"`
	Coulis      []string `json:"coulis"`
	Rating      float64  `json:"rating"`
	Popular     bool     `json:"popular"`
}

// LoyaltyInfo содержит вычисленное состояние программы лояльности.
type LoyaltyInfo struct {
	TotalOrders     int    `json:"totalOrders"`
	CurrentTier     string `json:"currentTier"`
	CurrentProgress int    `json:"currentProgress"`
	NextReward      string `json:"nextReward"`
	Emoji           string `json:"emoji"`
}

// NameCount содержит счётчик выборов для топпинга или соуса.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SizeDistribution содержит распределение позиций заказов по размерам.
type SizeDistribution struct {
	L  int `json:"L"`
	XL int `json:"XL"`
}

// Stats содержит агрегированную статистику по всем заказам.
type Stats struct {
	TotalOrders      int                 `json:"totalOrders"`
	TotalRevenue     float64             `json:"totalRevenue"`
	PopularToppings  []NameCount         `json:"popularToppings"`
	PopularCoulis    []NameCount         `json:"popularCoulis"`
	SizeDistribution SizeDistribution    `json:"sizeDistribution"`
	OrdersByStatus   map[OrderStatus]int `json:"ordersByStatus"`
}

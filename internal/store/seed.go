package store

import (
	"time"

	"github.com/cremecookies/storefront-system/internal/model"
)

// demoPassword — пароль демонстрационных учётных записей персонала.
const demoPassword = "cremecookies"

// Seed загружает демонстрационные данные: каталог, персонал, готовые
// рецепты и несколько заказов в разных статусах. Счётчик номеров
// заказов выставляется по количеству загруженных заказов.
func (s *Store) Seed() {
	now := time.Now()

	s.mu.Lock()

	s.toppings = []model.Topping{
		{ID: "kinder", Name: "Kinder Bueno", Emoji: "🍫", Active: true},
		{ID: "kinder-white", Name: "Kinder Bueno White", Emoji: "🤍", Active: true},
		{ID: "speculoos", Name: "Spéculoos", Emoji: "🍪", Active: true},
		{ID: "oreo", Name: "Oreo", Emoji: "🖤", Active: true},
		{ID: "twix", Name: "Twix", Emoji: "🍬", Active: true},
		{ID: "cookies", Name: "Cookies", Emoji: "🍪", Active: true},
		{ID: "mms", Name: "M&M's", Emoji: "🌈", Active: true},
	}

	s.coulisList = []model.Coulis{
		{ID: "chocolat", Name: "Coulis Chocolat", Emoji: "🍫", Active: true},
		{ID: "nutella", Name: "Nutella", Emoji: "🫙", Active: true},
		{ID: "speculoos-coulis", Name: "Coulis Spéculoos", Emoji: "🍯", Active: true},
		{ID: "caramel", Name: "Caramel", Emoji: "🍮", Active: true},
	}

	s.users = []model.User{
		{
			ID:           "admin1",
			Name:         "Administrateur",
			Email:        "admin@cremecookies.fr",
			PasswordHash: HashPassword("admin@cremecookies.fr", demoPassword),
			Role:         model.RoleAdmin,
			Active:       true,
		},
		{
			ID:           "kitchen1",
			Name:         "Chef Cuisine",
			Email:        "cuisine@cremecookies.fr",
			PasswordHash: HashPassword("cuisine@cremecookies.fr", demoPassword),
			Role:         model.RoleKitchen,
			Active:       true,
		},
		{
			ID:           "delivery1",
			Name:         "Livreur Ali",
			Email:        "livreur@cremecookies.fr",
			PasswordHash: HashPassword("livreur@cremecookies.fr", demoPassword),
			Role:         model.RoleDelivery,
			Active:       true,
		},
	}

	s.orders = []model.Order{
		{
			ID: "CMD-001",
			Items: []model.TiramisuItem{
				{ID: "s1", Size: model.SizeXL, Toppings: []string{"Oreo", "Kinder Bueno"}, Coulis: []string{"Nutella"}, Price: 12},
			},
			Total:         12,
			Status:        model.OrderStatusPreparing,
			ClientName:    "Marie Dupont",
			ClientPhone:   "06 12 34 56 78",
			ClientAddress: "12 Rue de la Paix, 75002 Paris",
			CreatedAt:     now.Add(-30 * time.Minute),
		},
		{
			ID: "CMD-002",
			Items: []model.TiramisuItem{
				{ID: "s2", Size: model.SizeL, Toppings: []string{"Spéculoos"}, Coulis: []string{"Caramel", "Nutella"}, Price: 7},
			},
			Total:         7,
			Status:        model.OrderStatusReady,
			ClientName:    "Jean Martin",
			ClientPhone:   "06 98 76 54 32",
			ClientAddress: "5 Avenue des Champs, 75008 Paris",
			CreatedAt:     now.Add(-time.Hour),
			Notes:         "Sonner 2 fois",
		},
		{
			ID: "CMD-003",
			Items: []model.TiramisuItem{
				{ID: "s3", Size: model.SizeXL, Toppings: []string{"Kinder Bueno", "M&M's", "Cookies"}, Coulis: []string{"Coulis Chocolat"}, Price: 13},
				{ID: "s4", Size: model.SizeL, Toppings: []string{"Oreo"}, Coulis: []string{"Caramel"}, Price: 6},
			},
			Total:          19,
			Status:         model.OrderStatusDelivered,
			ClientName:     "Sophie Bernard",
			ClientPhone:    "06 55 44 33 22",
			ClientAddress:  "28 Bd Haussmann, 75009 Paris",
			CreatedAt:      now.Add(-3 * time.Hour),
			AssignedDriver: "Livreur Ali",
		},
	}
	s.orderSeq = len(s.orders)

	s.presets = []model.Preset{
		{
			ID:          "oreo",
			Name:        "Tiramisu Oreo",
			Description: "Le classique revisité avec des biscuits Oreo croquants",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Oreo"},
			Coulis:      []string{"Coulis Chocolat"},
			Rating:      4.8,
			Popular:     true,
		},
		{
			ID:          "speculoos",
			Name:        "Tiramisu Spéculoos",
			Description: "Le goût caramelisé du Spéculoos traditionnel",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Spéculoos"},
			Coulis:      []string{"Caramel"},
			Rating:      4.6,
			Popular:     true,
		},
		{
			ID:          "kinder-bueno",
			Name:        "Tiramisu Kinder Bueno",
			Description: "Le goût unique du Kinder Bueno dans un tiramisu crémeux",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Kinder Bueno"},
			Coulis:      []string{"Coulis Chocolat"},
			Rating:      4.7,
			Popular:     true,
		},
		{
			ID:          "twix",
			Name:        "Tiramisu Twix",
			Description: "Le duo caramel-chocolat du Twix",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Twix"},
			Coulis:      []string{"Caramel"},
			Rating:      4.6,
		},
		{
			ID:          "cookies",
			Name:        "Tiramisu Cookies",
			Description: "Cookies maison et chocolat fondant",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Cookies"},
			Coulis:      []string{"Coulis Chocolat"},
			Rating:      4.3,
		},
		{
			ID:          "mini-oreo",
			Name:        "Mini Tiramisu Oreo",
			Description: "Format individuel du classique Oreo",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Oreo"},
			Coulis:      []string{"Coulis Chocolat"},
			Rating:      4.3,
		},
		{
			ID:          "mini-speculoos",
			Name:        "Mini Tiramisu Spéculoos",
			Description: "Format individuel au goût caramelisé",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Spéculoos"},
			Coulis:      []string{"Caramel"},
			Rating:      4.0,
		},
		{
			ID:          "mini-kinder",
			Name:        "Mini Tiramisu Kinder",
			Description: "Format individuel avec les saveurs Kinder",
			Price:       5,
			Size:        model.SizeL,
			Toppings:    []string{"Kinder Bueno"},
			Coulis:      []string{"Coulis Chocolat"},
			Rating:      4.2,
		},
	}

	s.mu.Unlock()
	s.notify()
}

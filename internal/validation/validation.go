// Package validation содержит функции валидации входных данных.
package validation

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/cremecookies/storefront-system/internal/model"
)

// IsValidEmail проверяет синтаксическую корректность адреса email.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// IsValidPhone проверяет номер телефона: допускаются цифры, пробелы,
// точки, дефисы и ведущий плюс, минимум шесть цифр.
func IsValidPhone(phone string) bool {
	digits := 0
	for i, ch := range phone {
		switch {
		case unicode.IsDigit(ch):
			digits++
		case ch == '+' && i == 0:
		case ch == ' ' || ch == '.' || ch == '-':
		default:
			return false
		}
	}
	return digits >= 6
}

// IsValidSize проверяет, что строка обозначает известный размер.
func IsValidSize(s string) bool {
	return s == string(model.SizeL) || s == string(model.SizeXL)
}

// IsValidOrderStatus проверяет, что строка обозначает известный статус заказа.
func IsValidOrderStatus(s string) bool {
	_, ok := model.StatusLabels[model.OrderStatus(s)]
	return ok
}

// IsValidRole проверяет, что строка обозначает известную роль.
func IsValidRole(s string) bool {
	switch model.Role(s) {
	case model.RoleAdmin, model.RoleKitchen, model.RoleDelivery, model.RoleClient:
		return true
	}
	return false
}

// NormalizeName убирает краевые пробелы из имени.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

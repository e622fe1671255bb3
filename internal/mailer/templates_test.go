package mailer

import (
	"strings"
	"testing"

	"github.com/cremecookies/storefront-system/internal/model"
)

func TestVerificationTemplate(t *testing.T) {
	msg := Verification("marie@x.com", "Marie", "http://test.local/verify-email?token=abc")

	if msg.To != "marie@x.com" {
		t.Fatalf("to = %s", msg.To)
	}
	if !strings.Contains(msg.Subject, "Confirmez votre email") {
		t.Fatalf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Bienvenue Marie") {
		t.Fatalf("name missing from body")
	}
	if strings.Count(msg.HTML, "http://test.local/verify-email?token=abc") != 2 {
		t.Fatalf("verification link must appear as button and plain text")
	}
}

func TestWelcomeTemplate(t *testing.T) {
	msg := Welcome("chef@x.com", "Chef")

	if !strings.Contains(msg.Subject, "Bienvenue chez Crème & Cookies") {
		t.Fatalf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Bienvenue Chef") {
		t.Fatalf("name missing from body")
	}
}

func TestOrderConfirmationTemplate(t *testing.T) {
	items := []model.TiramisuItem{
		{Size: model.SizeXL, Toppings: []string{"Oreo", "Twix"}, Coulis: []string{"Caramel"}, Price: 11},
		{Size: model.SizeL, Price: 5},
	}

	msg := OrderConfirmation("marie@x.com", "CMD-004", items, 16)

	if !strings.Contains(msg.Subject, "CMD-004") {
		t.Fatalf("order id missing from subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Oreo, Twix") {
		t.Fatalf("toppings missing from body")
	}
	// Позиция без топпингов и соусов отображается явно.
	if strings.Count(msg.HTML, "Aucun") != 2 {
		t.Fatalf("empty selections must render as Aucun")
	}
	if !strings.Contains(msg.HTML, "Total: 16.00€") {
		t.Fatalf("total missing from body")
	}
}

func TestPromoTemplate(t *testing.T) {
	withCode := Promo("marie@x.com", "Promo d'été", "Un tiramisu offert", "ETE2026")
	if withCode.Subject != "Promo d'été 🎁" {
		t.Fatalf("unexpected subject: %s", withCode.Subject)
	}
	if !strings.Contains(withCode.HTML, "ETE2026") {
		t.Fatalf("promo code missing from body")
	}

	withoutCode := Promo("marie@x.com", "Promo d'été", "Un tiramisu offert", "")
	if strings.Contains(withoutCode.HTML, "Code promo") {
		t.Fatalf("code block rendered without a code")
	}
}

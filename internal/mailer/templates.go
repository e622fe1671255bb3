package mailer

import (
	"fmt"
	"strings"

	"github.com/cremecookies/storefront-system/internal/model"
)

// Фирменные цвета писем, совпадающие с палитрой сайта.
const (
	colorPink       = "#ffb3ba"
	colorBlue       = "#bae1ff"
	colorBeigeLight = "#faf5ef"
	colorText       = "#4a4a4a"
	colorTextLight  = "#666666"
)

// wrap оборачивает содержимое в общий каркас письма с шапкой и подвалом.
func wrap(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="margin:0;padding:0;background-color:%s;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:40px 20px;">
    <table width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%%;background:white;border-radius:20px;overflow:hidden;">
      <tr>
        <td style="background:linear-gradient(135deg,%s 0%%,%s 100%%);padding:40px 30px;text-align:center;">
          <h1 style="color:white;margin:0;font-size:28px;">🍪 Crème &amp; Cookies</h1>
          <p style="color:white;margin:10px 0 0;font-size:16px;">Votre tiramisu sur mesure</p>
        </td>
      </tr>
      <tr><td style="padding:40px 30px;">%s</td></tr>
      <tr>
        <td style="padding:30px;background:%s;text-align:center;">
          <p style="color:#999;font-size:12px;margin:0;">© Crème &amp; Cookies - Tous droits réservés<br>
          Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
        </td>
      </tr>
    </table>
  </td></tr></table>
</body>
</html>`, title, colorBeigeLight, colorPink, colorBlue, content, colorBeigeLight)
}

// Verification формирует письмо подтверждения email со ссылкой на токен.
func Verification(to, name, verificationURL string) Email {
	content := fmt.Sprintf(`
<h2 style="color:%s;font-size:24px;text-align:center;">Bienvenue %s ! 👋</h2>
<p style="color:%s;font-size:16px;line-height:1.7;text-align:center;">
  Merci de vous être inscrit chez <strong style="color:%s;">Crème &amp; Cookies</strong>.<br>
  Pour activer votre compte et commencer à composer vos tiramisus, veuillez confirmer votre email.
</p>
<div style="text-align:center;margin:35px 0;">
  <a href="%s" style="background:linear-gradient(135deg,%s 0%%,%s 100%%);color:white;padding:18px 40px;text-decoration:none;border-radius:30px;font-weight:700;">✅ Confirmer mon email</a>
</div>
<p style="color:#999;font-size:13px;text-align:center;">Si le bouton ne fonctionne pas, copiez ce lien :<br>%s</p>`,
		colorText, name, colorTextLight, colorPink, verificationURL, colorPink, colorBlue, verificationURL)

	return Email{
		To:      to,
		Subject: "Confirmez votre email - Crème & Cookies 🍪",
		HTML:    wrap("Vérification email - Crème & Cookies", content),
	}
}

// Welcome формирует приветственное письмо для созданной администратором
// учётной записи.
func Welcome(to, name string) Email {
	content := fmt.Sprintf(`
<h2 style="color:%s;font-size:24px;text-align:center;">Bienvenue %s ! 🎉</h2>
<p style="color:%s;font-size:16px;line-height:1.7;text-align:center;">
  Votre compte <strong style="color:%s;">Crème &amp; Cookies</strong> vient d'être créé.<br>
  Composez votre tiramisu, sauvegardez vos favoris et recevez nos offres.
</p>`, colorText, name, colorTextLight, colorPink)

	return Email{
		To:      to,
		Subject: "Bienvenue chez Crème & Cookies 🍪",
		HTML:    wrap("Bienvenue - Crème & Cookies", content),
	}
}

// OrderConfirmation формирует письмо подтверждения заказа с его составом.
func OrderConfirmation(to, orderID string, items []model.TiramisuItem, total float64) Email {
	var lines strings.Builder
	for _, it := range items {
		toppings := strings.Join(it.Toppings, ", ")
		if toppings == "" {
			toppings = "Aucun"
		}
		coulis := strings.Join(it.Coulis, ", ")
		if coulis == "" {
			coulis = "Aucun"
		}
		fmt.Fprintf(&lines, `<div style="border-bottom:1px solid #eee;padding:10px 0;"><strong>Tiramisu %s</strong><br>Toppings: %s<br>Coulis: %s</div>`,
			it.Size, toppings, coulis)
	}

	content := fmt.Sprintf(`
<h2 style="color:%s;font-size:24px;text-align:center;">Commande Confirmée ! #%s</h2>
<p style="color:%s;font-size:16px;text-align:center;">Votre commande a été reçue et est en préparation !</p>
<div style="background:#f9f9f9;padding:20px;border-radius:10px;margin:20px 0;">%s
  <div style="text-align:right;font-size:20px;font-weight:bold;color:%s;margin-top:10px;">Total: %.2f€</div>
</div>
<p style="text-align:center;color:%s;">Vous recevrez un email lorsque votre commande sera prête !</p>`,
		colorText, orderID, colorTextLight, lines.String(), colorPink, total, colorTextLight)

	return Email{
		To:      to,
		Subject: fmt.Sprintf("Confirmation de votre commande #%s 🍰", orderID),
		HTML:    wrap("Confirmation de commande - Crème & Cookies", content),
	}
}

// Promo формирует промо-письмо, при наличии кода он выделяется в рамке.
func Promo(to, title, message, code string) Email {
	codeBlock := ""
	if code != "" {
		codeBlock = fmt.Sprintf(`
<div style="background:#fff3cd;border:2px dashed #ffc107;padding:20px;border-radius:10px;margin:20px 0;text-align:center;">
  <p style="margin:0;font-size:14px;color:#856404;">Code promo :</p>
  <p style="margin:10px 0;font-size:24px;font-weight:bold;color:#ff6b6b;letter-spacing:2px;">%s</p>
</div>`, code)
	}

	content := fmt.Sprintf(`
<h2 style="color:%s;font-size:24px;text-align:center;">%s</h2>
<p style="font-size:18px;color:%s;line-height:1.6;text-align:center;">%s</p>%s`,
		colorText, title, colorTextLight, message, codeBlock)

	return Email{
		To:      to,
		Subject: title + " 🎁",
		HTML:    wrap(title, content),
	}
}

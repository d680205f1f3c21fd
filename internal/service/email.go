package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/app"
	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type EmailService interface {
	SendOrderConfirmation(to, name string, order *model.Order) error
	SendPaymentConfirmation(to, name string, order *model.Order) error
}

type smtpEmail struct {
	cfg app.Config
}

func NewEmailService(cfg app.Config) EmailService {
	return &smtpEmail{cfg: cfg}
}

func (s *smtpEmail) SendOrderConfirmation(to, name string, order *model.Order) error {
	var items strings.Builder
	for _, item := range order.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>$%s</td><td>$%s</td></tr>",
			item.ProductName, item.Quantity, item.Price.StringFixed(2),
			lineTotal.StringFixed(2)))
	}

	body := fmt.Sprintf(`<html><body>
<h2>Order confirmation</h2>
<p>Hi %s,</p>
<p>Thanks for your purchase. Your order #%s has been received and is being processed.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Product</th><th>Quantity</th><th>Unit price</th><th>Total</th></tr>
%s
</table>
<p><strong>Total: $%s</strong></p>
<p>Shipping address: %s</p>
</body></html>`,
		name, order.ID, items.String(), order.Total.StringFixed(2), order.ShippingAddress)

	return s.send(to, fmt.Sprintf("Order confirmation #%s", order.ID), body)
}

func (s *smtpEmail) SendPaymentConfirmation(to, name string, order *model.Order) error {
	body := fmt.Sprintf(`<html><body>
<h2>Payment confirmed</h2>
<p>Hi %s,</p>
<p>Your payment of $%s for order #%s has been processed. Your order is being prepared for shipping.</p>
</body></html>`,
		name, order.Total.StringFixed(2), order.ID)

	return s.send(to, fmt.Sprintf("Payment confirmed - order #%s", order.ID), body)
}

func (s *smtpEmail) send(to, subject, body string) error {
	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	msg := "From: " + s.cfg.SMTPFrom + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n" +
		body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{to}, []byte(msg))
}

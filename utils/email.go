package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Arjun-717/DineDash/models"
	"gopkg.in/gomail.v2"
)

// statusSubjects maps order statuses to notification subjects
var statusSubjects = map[models.OrderStatus]string{
	models.OrderStatusConfirmed:      "Your order has been confirmed",
	models.OrderStatusPreparing:      "Your order is being prepared",
	models.OrderStatusReady:          "Your order is ready",
	models.OrderStatusOutForDelivery: "Your order is out for delivery",
	models.OrderStatusDelivered:      "Your order has been delivered",
	models.OrderStatusCompleted:      "Your order is complete",
	models.OrderStatusCancelled:      "Your order has been cancelled",
}

// SendEmail sends an HTML email via the configured SMTP server
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// NotifyOrderStatus sends the (orderID, newStatus) notification to the
// customer. Fire-and-forget: it runs in its own goroutine and failures
// are logged, never surfaced to the request that triggered them.
func NotifyOrderStatus(order *models.Order, newStatus models.OrderStatus) {
	email := order.User.Email
	if email == "" {
		LogDebug("No email on order %d, skipping %s notification", order.ID, newStatus)
		return
	}

	subject, ok := statusSubjects[newStatus]
	if !ok {
		subject = fmt.Sprintf("Update on your order %s", order.OrderNumber)
	}

	body := fmt.Sprintf(`
		<h2>%s</h2>
		<p>Order <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p>Order total: %.2f</p>
	`, subject, order.OrderNumber, newStatus, order.Total)

	orderID := order.ID
	go func() {
		if err := SendEmail(email, subject, body); err != nil {
			LogError("Failed to send %s notification for order %d: %v", newStatus, orderID, err)
			return
		}
		LogInfo("Sent %s notification for order %d", newStatus, orderID)
	}()
}

// services/digest.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"frecha-backend/utils"

	"github.com/robfig/cron/v3"
)

// DigestService mails the shop admin a daily list of orders that have sat
// in pending for too long.
type DigestService struct {
	orders   *OrderService
	notifier Notifier
}

func NewDigestService(orders *OrderService, notifier Notifier) *DigestService {
	return &DigestService{orders: orders, notifier: notifier}
}

// StartScheduler runs the digest every day at 8 AM.
func (s *DigestService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 8 * * *", s.SendPendingDigest); err != nil {
		log.Printf("Failed to schedule pending-order digest: %v", err)
		return
	}

	c.Start()
	log.Println("Pending-order digest scheduler started")
}

// SendPendingDigest emails ADMIN_EMAIL the orders pending for 2+ days.
// Skipped silently when there is nothing stale or no admin address is set.
func (s *DigestService) SendPendingDigest() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("ADMIN_EMAIL not set, skipping pending-order digest")
		return
	}

	cutoff := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -2)
	stale, err := s.orders.StaleOrders(cutoff)
	if err != nil {
		log.Printf("Failed to collect stale orders: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d order(s) have been pending for 2 or more days:\n\n", len(stale))
	for _, o := range stale {
		fmt.Fprintf(&b, "  #%d  %s  %s  %s  (%d day(s) old)\n",
			o.ID, o.CustomerName, o.ServiceType.Display(), o.ProductDetails,
			utils.DaysBetween(o.CreatedAt, time.Now()))
	}

	subject := fmt.Sprintf("Pending orders digest: %d awaiting action", len(stale))
	if !s.notifier.SendEmail(adminEmail, subject, b.String()) {
		log.Println("Failed to send pending-order digest")
	}
}

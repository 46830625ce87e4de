// services/order_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"frecha-backend/models"
	"frecha-backend/utils"

	"gorm.io/gorm"
)

var (
	// ErrInvalidStatus is returned before any mutation when the target
	// status is not a recognized enum value.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNotFound covers a missing order, a missing tracking token, and a
	// guest signup with a non-matching email. The last case deliberately
	// looks identical to a missing order so callers cannot probe for
	// order existence.
	ErrNotFound = errors.New("order not found")

	// ErrConflict means another update won the version race. The caller
	// should re-fetch and retry.
	ErrConflict = errors.New("order was modified concurrently")
)

// OrderService owns the order status lifecycle: transitions, customer
// notification, and the tracking journal.
type OrderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// TransitionInput carries the optional fields of an admin status update.
// Non-nil AdminNotes replaces the stored notes; non-nil TrackingNumber
// replaces the carrier reference.
type TransitionInput struct {
	AdminNotes     *string
	TrackingNumber *string
}

// Transition applies a status change and keeps the completed-at invariant:
// entering delivered stamps CompletedAt, nothing else touches it. Any
// recognized status is accepted as a target (see models.OrderStatus).
//
// The update is a compare-and-swap on the version column; losing the race
// returns ErrConflict. Transition never notifies; that is a separate,
// explicit step.
func (s *OrderService) Transition(orderID uint, newStatus models.OrderStatus, input TransitionInput) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.applyTransition(&order, newStatus, input)
}

// applyTransition writes the status change against the version the caller
// read. A zero-row update means someone else saved the order in between.
func (s *OrderService) applyTransition(order *models.Order, newStatus models.OrderStatus, input TransitionInput) (*models.Order, error) {
	updates := map[string]interface{}{
		"status":  newStatus,
		"version": order.Version + 1,
	}
	if input.AdminNotes != nil {
		updates["admin_notes"] = *input.AdminNotes
	}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if newStatus == models.StatusDelivered {
		updates["completed_at"] = time.Now()
	}

	result := s.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConflict
	}

	var updated models.Order
	if err := s.db.First(&updated, order.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Notify sends the status message over the requested channel(s) and, when
// at least one hand-off succeeds, stamps the notification bookkeeping
// fields on the order. Transport failure is logged and reported through
// the boolean return; it never raises and never touches the status change
// itself. Every attempt is recorded in the notification log, one row per
// channel.
func (s *OrderService) Notify(order *models.Order, method models.NotificationMethod, message string) bool {
	if !method.Valid() {
		return false
	}

	if message == "" {
		message = fmt.Sprintf("Your order #%d status has been updated to: %s",
			order.ID, order.Status.Display())
	}

	sent := false

	if method == models.NotifyEmail || method == models.NotifyBoth {
		subject := fmt.Sprintf("Order #%d Update", order.ID)
		body := fmt.Sprintf(
			"Dear %s,\n\n%s\n\nOrder details:\n  Order ID: %d\n  Service: %s\n  Product: %s\n  Quantity: %d\n  Total: %.2f TZS\n\nThank you for shopping with us.",
			order.CustomerName, message, order.ID,
			order.ServiceType.Display(), order.ProductDetails,
			order.Quantity, order.TotalPrice)

		ok := s.notifier.SendEmail(order.CustomerEmail, subject, body)
		s.logAttempt(order, "email", order.CustomerEmail, message, ok)
		sent = sent || ok
	}

	if method == models.NotifySMS || method == models.NotifyBoth {
		body := fmt.Sprintf("Order #%d: %s", order.ID, message)

		ok := s.notifier.SendSMS(order.CustomerPhone, body)
		s.logAttempt(order, "sms", order.CustomerPhone, body, ok)
		sent = sent || ok
	}

	if !sent {
		return false
	}

	now := time.Now()
	if err := s.db.Model(order).Updates(map[string]interface{}{
		"customer_notified":    true,
		"notification_sent_at": now,
		"notification_method":  method,
	}).Error; err != nil {
		log.Printf("Failed to record notification for order %d: %v", order.ID, err)
		return true // the customer was reached either way
	}
	order.CustomerNotified = true
	order.NotificationSentAt = &now
	order.NotificationMethod = method
	return true
}

func (s *OrderService) logAttempt(order *models.Order, channel, recipient, message string, ok bool) {
	entry := models.NotificationLog{
		OrderID:   order.ID,
		Channel:   channel,
		Recipient: recipient,
		Message:   message,
		Status:    "sent",
		SentAt:    time.Now(),
	}
	if !ok {
		entry.Status = "failed"
		entry.ErrorMessage = fmt.Sprintf("%s hand-off failed", channel)
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for order %d: %v", order.ID, err)
	}
}

// RecordTrackingUpdate appends one entry to the order's tracking journal,
// creating the tracking record (and its token) on first use. Appending is
// the only mutation the journal supports. Independent of Transition: an
// admin "update and track" action calls both explicitly.
func (s *OrderService) RecordTrackingUpdate(orderID uint, status models.OrderStatus, note string) (*models.OrderTracking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tracking, err := s.ensureTracking(&order)
	if err != nil {
		return nil, err
	}

	update := models.OrderTrackingUpdate{
		TrackingID: tracking.ID,
		Status:     status,
		Note:       note,
	}
	if err := s.db.Create(&update).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Updates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	}).First(tracking, tracking.ID).Error; err != nil {
		return nil, err
	}
	return tracking, nil
}

// RegisterGuestTracking creates (or returns) the tracking record for a
// guest who proves they placed the order by presenting its email address.
// A mismatched email returns ErrNotFound, indistinguishable from a missing
// order, so the endpoint cannot be used to confirm an order exists.
func (s *OrderService) RegisterGuestTracking(orderID uint, email string) (*models.OrderTracking, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(email), order.CustomerEmail) {
		return nil, ErrNotFound
	}

	return s.ensureTracking(&order)
}

// LookupTracking resolves a public tracking token to its order status and
// journal.
func (s *OrderService) LookupTracking(token string) (*models.OrderTracking, *models.Order, error) {
	var tracking models.OrderTracking
	err := s.db.Preload("Updates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	}).Where("token = ? AND is_active = ?", token, true).First(&tracking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var order models.Order
	if err := s.db.First(&order, tracking.OrderID).Error; err != nil {
		return nil, nil, err
	}
	return &tracking, &order, nil
}

// ensureTracking returns the order's tracking record, creating it with a
// fresh token and denormalized contact details if it does not exist yet.
func (s *OrderService) ensureTracking(order *models.Order) (*models.OrderTracking, error) {
	var tracking models.OrderTracking
	err := s.db.Where("order_id = ?", order.ID).First(&tracking).Error
	if err == nil {
		return &tracking, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tracking = models.OrderTracking{
		OrderID:       order.ID,
		Token:         utils.GenerateTrackingToken(),
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		IsActive:      true,
	}
	if err := s.db.Create(&tracking).Error; err != nil {
		return nil, err
	}
	return &tracking, nil
}

// Search does a case-insensitive substring match across the customer
// identity fields and the product description.
func (s *OrderService) Search(q string) ([]models.Order, error) {
	term := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	var orders []models.Order
	err := s.db.Where(
		"LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_phone) LIKE ? OR LOWER(product_details) LIKE ?",
		term, term, term, term,
	).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// StaleOrders returns orders still pending since before the cutoff. Used
// by the daily admin digest.
func (s *OrderService) StaleOrders(cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Order("created_at ASC").Find(&orders).Error
	return orders, err
}

package services

import (
	"testing"
	"time"

	"frecha-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubNotifier struct {
	emailOK bool
	smsOK   bool

	emails []string
	smses  []string
}

func (n *stubNotifier) SendEmail(to, subject, body string) bool {
	n.emails = append(n.emails, to)
	return n.emailOK
}

func (n *stubNotifier) SendSMS(to, body string) bool {
	n.smses = append(n.smses, to)
	return n.smsOK
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Order{},
		&models.OrderTracking{},
		&models.OrderTrackingUpdate{},
		&models.NotificationLog{},
	))
	return db
}

func newTestOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerName:   "Asha",
		CustomerEmail:  "asha@example.com",
		CustomerPhone:  "+255700000000",
		ServiceType:    models.ServiceBundle,
		ProductDetails: "5GB Monthly",
		Quantity:       1,
		TotalPrice:     15000.00,
		Status:         models.StatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestTransition(t *testing.T) {
	t.Run("sets every valid status", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})

		for _, status := range []models.OrderStatus{
			models.StatusConfirmed,
			models.StatusProcessing,
			models.StatusShipped,
			models.StatusDelivered,
			models.StatusCancelled,
			models.StatusPending,
		} {
			order := newTestOrder(t, db)
			updated, err := svc.Transition(order.ID, status, TransitionInput{})
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("stamps completed_at only on delivered", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		updated, err := svc.Transition(order.ID, models.StatusShipped, TransitionInput{})
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)

		updated, err = svc.Transition(order.ID, models.StatusDelivered, TransitionInput{})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		assert.WithinDuration(t, time.Now(), *updated.CompletedAt, 5*time.Second)
	})

	t.Run("leaves completed_at untouched across repeated non-delivered transitions", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		_, err := svc.Transition(order.ID, models.StatusConfirmed, TransitionInput{})
		require.NoError(t, err)
		updated, err := svc.Transition(order.ID, models.StatusProcessing, TransitionInput{})
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("replaces admin notes when provided", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		first := "first note"
		_, err := svc.Transition(order.ID, models.StatusConfirmed, TransitionInput{AdminNotes: &first})
		require.NoError(t, err)

		second := "second note"
		updated, err := svc.Transition(order.ID, models.StatusProcessing, TransitionInput{AdminNotes: &second})
		require.NoError(t, err)
		require.NotNil(t, updated.AdminNotes)
		assert.Equal(t, "second note", *updated.AdminNotes)
	})

	t.Run("records the carrier tracking number when provided", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		ref := "DHL-4481-TZ"
		updated, err := svc.Transition(order.ID, models.StatusShipped, TransitionInput{TrackingNumber: &ref})
		require.NoError(t, err)
		require.NotNil(t, updated.TrackingNumber)
		assert.Equal(t, "DHL-4481-TZ", *updated.TrackingNumber)
	})

	t.Run("rejects unknown status without mutating the order", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		_, err := svc.Transition(order.ID, models.OrderStatus("bogus"), TransitionInput{})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, models.StatusPending, reloaded.Status)
		assert.Equal(t, order.UpdatedAt.Unix(), reloaded.UpdatedAt.Unix())
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})

		_, err := svc.Transition(9999, models.StatusConfirmed, TransitionInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("detects a lost version race", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		// Another admin saves the order after our read
		require.NoError(t, db.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("version", order.Version+1).Error)

		_, err := svc.applyTransition(order, models.StatusShipped, TransitionInput{})
		assert.ErrorIs(t, err, ErrConflict)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, models.StatusPending, reloaded.Status)
	})
}

func TestNotify(t *testing.T) {
	t.Run("successful email sets the bookkeeping fields", func(t *testing.T) {
		db := newTestDB(t)
		notifier := &stubNotifier{emailOK: true}
		svc := NewOrderService(db, notifier)
		order := newTestOrder(t, db)

		before := time.Now().Add(-time.Second)
		ok := svc.Notify(order, models.NotifyEmail, "")
		assert.True(t, ok)
		assert.Equal(t, []string{"asha@example.com"}, notifier.emails)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.True(t, reloaded.CustomerNotified)
		assert.Equal(t, models.NotifyEmail, reloaded.NotificationMethod)
		require.NotNil(t, reloaded.NotificationSentAt)
		assert.True(t, reloaded.NotificationSentAt.After(before))
	})

	t.Run("transport failure changes nothing and returns false", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{emailOK: false})
		order := newTestOrder(t, db)

		ok := svc.Notify(order, models.NotifyEmail, "")
		assert.False(t, ok)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.False(t, reloaded.CustomerNotified)
		assert.Nil(t, reloaded.NotificationSentAt)
		assert.Empty(t, reloaded.NotificationMethod)
	})

	t.Run("both succeeds when only one leg succeeds", func(t *testing.T) {
		db := newTestDB(t)
		notifier := &stubNotifier{emailOK: false, smsOK: true}
		svc := NewOrderService(db, notifier)
		order := newTestOrder(t, db)

		ok := svc.Notify(order, models.NotifyBoth, "")
		assert.True(t, ok)
		assert.Len(t, notifier.emails, 1)
		assert.Len(t, notifier.smses, 1)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.True(t, reloaded.CustomerNotified)
		assert.Equal(t, models.NotifyBoth, reloaded.NotificationMethod)
	})

	t.Run("writes one log row per attempted channel", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{emailOK: true, smsOK: false})
		order := newTestOrder(t, db)

		svc.Notify(order, models.NotifyBoth, "custom message")

		var logs []models.NotificationLog
		require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&logs).Error)
		require.Len(t, logs, 2)
		assert.Equal(t, "email", logs[0].Channel)
		assert.Equal(t, "sent", logs[0].Status)
		assert.Equal(t, "sms", logs[1].Channel)
		assert.Equal(t, "failed", logs[1].Status)
	})

	t.Run("synthesizes the default message", func(t *testing.T) {
		db := newTestDB(t)
		notifier := &stubNotifier{smsOK: true}
		svc := NewOrderService(db, notifier)
		order := newTestOrder(t, db)
		order.Status = models.StatusShipped

		ok := svc.Notify(order, models.NotifySMS, "")
		assert.True(t, ok)

		var entry models.NotificationLog
		require.NoError(t, db.Where("order_id = ?", order.ID).First(&entry).Error)
		assert.Contains(t, entry.Message, "status has been updated to: Shipped")
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{emailOK: true})
		order := newTestOrder(t, db)

		assert.False(t, svc.Notify(order, models.NotificationMethod("carrier-pigeon"), ""))
	})
}

func TestRecordTrackingUpdate(t *testing.T) {
	t.Run("appends in call order and keeps the token stable", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		first, err := svc.RecordTrackingUpdate(order.ID, models.StatusConfirmed, "order confirmed")
		require.NoError(t, err)
		require.Len(t, first.Updates, 1)
		assert.NotEmpty(t, first.Token)

		second, err := svc.RecordTrackingUpdate(order.ID, models.StatusShipped, "on the way")
		require.NoError(t, err)
		require.Len(t, second.Updates, 2)
		assert.Equal(t, first.Token, second.Token)
		assert.Equal(t, models.StatusConfirmed, second.Updates[0].Status)
		assert.Equal(t, models.StatusShipped, second.Updates[1].Status)
		assert.Equal(t, "order confirmed", second.Updates[0].Note)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		_, err := svc.RecordTrackingUpdate(order.ID, models.OrderStatus("nope"), "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})

		_, err := svc.RecordTrackingUpdate(4242, models.StatusConfirmed, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("independent of transition", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		_, err := svc.RecordTrackingUpdate(order.ID, models.StatusShipped, "")
		require.NoError(t, err)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, models.StatusPending, reloaded.Status)
	})
}

func TestGuestTracking(t *testing.T) {
	t.Run("matching email returns a token", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		tracking, err := svc.RegisterGuestTracking(order.ID, "Asha@Example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, tracking.Token)
		assert.Equal(t, order.CustomerEmail, tracking.CustomerEmail)
	})

	t.Run("wrong email looks like a missing order and creates nothing", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		_, err := svc.RegisterGuestTracking(order.ID, "intruder@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		var count int64
		db.Model(&models.OrderTracking{}).Where("order_id = ?", order.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("second signup reuses the existing record", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		first, err := svc.RegisterGuestTracking(order.ID, "asha@example.com")
		require.NoError(t, err)
		second, err := svc.RegisterGuestTracking(order.ID, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.Token, second.Token)
	})
}

func TestLookupTracking(t *testing.T) {
	t.Run("resolves a token to status and journal", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})
		order := newTestOrder(t, db)

		created, err := svc.RecordTrackingUpdate(order.ID, models.StatusConfirmed, "confirmed")
		require.NoError(t, err)

		tracking, found, err := svc.LookupTracking(created.Token)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		require.Len(t, tracking.Updates, 1)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewOrderService(db, &stubNotifier{})

		_, _, err := svc.LookupTracking("no-such-token")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, &stubNotifier{})

	newTestOrder(t, db)
	other := &models.Order{
		CustomerName:   "Juma",
		CustomerEmail:  "juma@example.com",
		CustomerPhone:  "+255711111111",
		ServiceType:    models.ServiceRouter,
		ProductDetails: "TP-Link Archer",
		Status:         models.StatusPending,
	}
	require.NoError(t, db.Create(other).Error)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		results, err := svc.Search("asha")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Asha", results[0].CustomerName)
	})

	t.Run("matches product details", func(t *testing.T) {
		results, err := svc.Search("archer")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Juma", results[0].CustomerName)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		results, err := svc.Search("zanzibar")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

// End-to-end: create -> deliver -> notify, the path the admin panel takes.
func TestOrderLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	notifier := &stubNotifier{emailOK: true}
	svc := NewOrderService(db, notifier)

	order := newTestOrder(t, db)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.CustomerNotified)

	delivered, err := svc.Transition(order.ID, models.StatusDelivered, TransitionInput{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.CompletedAt)

	ok := svc.Notify(delivered, models.NotifyEmail, "")
	assert.True(t, ok)
	assert.True(t, delivered.CustomerNotified)
}

func TestStaleOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, &stubNotifier{})

	old := newTestOrder(t, db)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -5)).Error)
	newTestOrder(t, db)

	stale, err := svc.StaleOrders(time.Now().AddDate(0, 0, -2))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)
}

package services

import (
	"context"
	"log"
	"time"

	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/timeutil"
)

// Materializer turns active subscriptions into pending delivery rows for a
// date. It is idempotent: re-running for the same date inserts nothing new,
// and deliveries an operator already resolved are left alone.
type Materializer struct {
	SubscriptionRepo *repositories.SubscriptionRepository
	DeliveryRepo     *repositories.DeliveryRepository
}

func NewMaterializer(subscriptionRepo *repositories.SubscriptionRepository, deliveryRepo *repositories.DeliveryRepository) *Materializer {
	return &Materializer{
		SubscriptionRepo: subscriptionRepo,
		DeliveryRepo:     deliveryRepo,
	}
}

// MaterializeForDate creates a pending delivery for every active
// subscription of an active customer that is due on the given IST calendar
// day. Returns the number of rows actually inserted.
func (m *Materializer) MaterializeForDate(ctx context.Context, date time.Time) (int, error) {
	subs, err := m.SubscriptionRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	day := timeutil.StartOfDay(date)
	created := 0
	for _, sub := range subs {
		if !sub.IsDueOn(day) {
			continue
		}

		subID := sub.ID
		d := &models.Delivery{
			CustomerID:     sub.CustomerID,
			ProductID:      sub.ProductID,
			SubscriptionID: &subID,
			Quantity:       sub.Quantity,
			Price:          sub.PricePerUnit,
			Amount:         DeliveryAmount(sub.Quantity, sub.PricePerUnit),
			Date:           day,
		}

		inserted, err := m.DeliveryRepo.CreateIfAbsent(ctx, d)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
			metrics.DeliveriesMaterialized.Inc()
		}
	}

	return created, nil
}

// RunDaily blocks, materializing today's deliveries once at startup and
// then every day at the configured IST wall-clock time (HH:MM). Meant to
// run in its own goroutine; returns when ctx is cancelled.
func (m *Materializer) RunDaily(ctx context.Context, runAt string) {
	run := func() {
		today := timeutil.StartOfDay(timeutil.Now())
		n, err := m.MaterializeForDate(ctx, today)
		if err != nil {
			log.Printf("[Materializer] run for %s failed: %v", today.Format(timeutil.DateLayout), err)
			return
		}
		log.Printf("[Materializer] %s: %d deliveries created", today.Format(timeutil.DateLayout), n)
	}

	run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(untilNextRun(timeutil.Now(), runAt)):
			run()
		}
	}
}

// untilNextRun returns the duration from now to the next occurrence of the
// HH:MM wall-clock time in IST. A malformed runAt falls back to 00:30.
func untilNextRun(now time.Time, runAt string) time.Duration {
	t, err := time.ParseInLocation("15:04", runAt, timeutil.IST)
	if err != nil {
		t, _ = time.ParseInLocation("15:04", "00:30", timeutil.IST)
	}

	ist := timeutil.ToIST(now)
	next := time.Date(ist.Year(), ist.Month(), ist.Day(), t.Hour(), t.Minute(), 0, 0, timeutil.IST)
	if !next.After(ist) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(ist)
}

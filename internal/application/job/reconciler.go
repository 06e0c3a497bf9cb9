package job

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/scentworks/scentworks-api/internal/domain/ledger"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
)

// Reconciler periodically recomputes order aggregates from their line items
// and repairs any stored figure that drifted. Drift should not happen while
// every write goes through submission; the job exists to catch manual edits
// and historical data.
type Reconciler struct {
	purchaseRepo    repository.PurchaseOrderRepository
	idempotencyRepo repository.IdempotencyRepository
	schedule        string
	cron            *cron.Cron
}

// NewReconciler creates a reconciler with a cron schedule expression
func NewReconciler(purchaseRepo repository.PurchaseOrderRepository, idempotencyRepo repository.IdempotencyRepository, schedule string) *Reconciler {
	return &Reconciler{
		purchaseRepo:    purchaseRepo,
		idempotencyRepo: idempotencyRepo,
		schedule:        schedule,
	}
}

// Start schedules the reconciliation job
func (r *Reconciler) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := r.Run(ctx); err != nil {
			log.Printf("aggregate reconciliation failed: %v", err)
		}
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	log.Printf("Aggregate reconciler scheduled: %s", r.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (r *Reconciler) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// Run recomputes aggregates for every order and repairs stored drift.
// Payment figures are left alone; only subtotal, tax and total are derived
// from items.
func (r *Reconciler) Run(ctx context.Context) error {
	orders, err := r.purchaseRepo.ListWithItems(ctx)
	if err != nil {
		return err
	}

	repaired := 0
	for _, order := range orders {
		items := make([]ledger.DraftItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, ledger.DraftItem{
				ItemName:  item.ItemName,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     ledger.LineTotal(item.Quantity, item.UnitPrice),
			})
		}
		totals := ledger.Aggregate(items, order.TaxRate)

		if totals.Subtotal.Equal(order.Subtotal) &&
			totals.TaxAmount.Equal(order.TaxAmount) &&
			totals.TotalAmount.Equal(order.TotalAmount) {
			continue
		}

		log.Printf("aggregate drift on %s: stored total %s, derived %s",
			order.PurchaseNo, order.TotalAmount.String(), totals.TotalAmount.String())
		if err := r.purchaseRepo.UpdateAggregates(ctx, order.ID, totals.Subtotal, totals.TaxAmount, totals.TotalAmount); err != nil {
			return err
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("aggregate reconciliation repaired %d orders", repaired)
	}

	if r.idempotencyRepo != nil {
		if err := r.idempotencyRepo.DeleteExpired(ctx); err != nil {
			log.Printf("expired idempotency key cleanup failed: %v", err)
		}
	}
	return nil
}

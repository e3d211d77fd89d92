package services

import (
	"context"
	"time"

	"houses-api/db"
	"houses-api/logger"
	"houses-api/query"
	"houses-api/repositories"
	"houses-api/usecases"

	"gorm.io/gorm"
)

// RatingReconciler periodically recomputes every house's average rating so
// rows touched outside the API converge back to their reviews.
type RatingReconciler struct {
	database  db.Database
	houses    repositories.HouseRepository
	lifecycle *usecases.Lifecycle
	interval  time.Duration
	log       *logger.Logger
}

func NewRatingReconciler(database db.Database, houses repositories.HouseRepository, lifecycle *usecases.Lifecycle, interval time.Duration, log *logger.Logger) *RatingReconciler {
	return &RatingReconciler{
		database:  database,
		houses:    houses,
		lifecycle: lifecycle,
		interval:  interval,
		log:       log.With("component", "rating_reconciler"),
	}
}

// Start runs a reconcile pass every interval until ctx is done.
func (r *RatingReconciler) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.log.Info("rating reconciler disabled")
		return
	}
	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.Reconcile(ctx); err != nil {
					r.log.Error("rating reconcile failed", "error", err)
				}
			}
		}
	}()
}

// Reconcile walks every house page by page and returns how many were recomputed.
func (r *RatingReconciler) Reconcile(ctx context.Context) (int, error) {
	start := time.Now()
	params := &query.Params{
		Select: []string{"id"},
		Order:  []string{"id ASC"},
		Page:   1,
		Limit:  query.MaxLimit,
	}

	done := 0
	for {
		houses, total, err := r.houses.List(ctx, nil, params)
		if err != nil {
			return done, err
		}
		for _, h := range houses {
			err := r.database.Transaction(ctx, func(tx *gorm.DB) error {
				_, err := r.lifecycle.RecomputeHouseAverageRating(ctx, tx, h.ID)
				return err
			})
			if err != nil {
				return done, err
			}
			done++
		}
		if int64(params.Page*params.Limit) >= total || len(houses) == 0 {
			break
		}
		params.Page++
	}

	r.log.Info("rating reconcile finished", "houses", done, "took", time.Since(start).String())
	return done, nil
}

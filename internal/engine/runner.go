package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ghatak0982/fleetcare/pkg/logger"
	"github.com/ghatak0982/fleetcare/pkg/mail"
	"github.com/ghatak0982/fleetcare/pkg/metrics"
)

const defaultWorkers = 4

// Summary reports the outcome of one evaluation pass.
type Summary struct {
	OwnersDue            int `json:"owners_due"`
	OwnersProcessed      int `json:"owners_processed"`
	NotificationsCreated int `json:"notifications_created"`
	Failures             int `json:"failures"`
}

// Runner executes expiry evaluation passes. It is stateless between runs:
// everything it needs lives in the vehicle, preference, and notification
// stores, so a cancelled or crashed pass simply resumes on the next tick.
type Runner struct {
	vehicles      VehicleStore
	prefs         PreferenceStore
	schedule      ScheduleStore
	notifications NotificationStore
	dedup         *Deduplicator

	mailer  mail.Mailer
	loc     *time.Location
	now     func() time.Time
	workers int
	log     *zap.Logger

	// inFlight serializes evaluation per owner across overlapping passes.
	inFlight sync.Map
}

// RunnerOption customises the Runner.
type RunnerOption func(*Runner)

// WithNow overrides the clock used for classification and scheduling.
func WithNow(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocation sets the canonical timezone used for the whole run.
func WithLocation(loc *time.Location) RunnerOption {
	return func(r *Runner) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithWorkers bounds the per-owner worker pool.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMailer attaches an outbound mailer for owners with email enabled.
func WithMailer(m mail.Mailer) RunnerOption {
	return func(r *Runner) {
		r.mailer = m
	}
}

// NewRunner constructs a Runner with the supplied stores.
func NewRunner(vehicles VehicleStore, prefs PreferenceStore, schedule ScheduleStore, notifications NotificationStore, opts ...RunnerOption) (*Runner, error) {
	if vehicles == nil {
		return nil, errors.New("runner: vehicle store is required")
	}
	if prefs == nil {
		return nil, errors.New("runner: preference store is required")
	}
	if schedule == nil {
		return nil, errors.New("runner: schedule store is required")
	}
	if notifications == nil {
		return nil, errors.New("runner: notification store is required")
	}

	dedup, err := NewDeduplicator(notifications)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		vehicles:      vehicles,
		prefs:         prefs,
		schedule:      schedule,
		notifications: notifications,
		dedup:         dedup,
		loc:           time.UTC,
		now:           time.Now,
		workers:       defaultWorkers,
		log:           logger.WithModule("engine"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// RunPass evaluates every due owner once. Owners are independent units of
// work and fan out to a bounded worker pool; per-owner processing stays
// sequential so watermark advancement is race-free. A failure inside one
// owner's batch never aborts the others: failed tuples are counted, the
// owner's watermark is left untouched, and the next tick retries them.
func (r *Runner) RunPass(ctx context.Context) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	now := r.now().In(r.loc)
	today := DateKey(now, r.loc)
	wallClock := now.Format("15:04")

	owners, err := r.schedule.DueOwners(ctx, wallClock, today)
	if err != nil {
		metrics.EvaluationRuns.WithLabelValues("error").Inc()
		return Summary{}, fmt.Errorf("runner: list due owners: %w", err)
	}

	summary := Summary{OwnersDue: len(owners)}

	var (
		mu   sync.Mutex
		errs error
	)

	g := &errgroup.Group{}
	g.SetLimit(r.workers)

	for _, owner := range owners {
		owner := owner
		if !r.acquire(owner.OwnerID) {
			// Another pass is still evaluating this owner.
			continue
		}

		g.Go(func() error {
			defer r.release(owner.OwnerID)

			created, failures, ownerErr := r.processOwner(ctx, owner, now, today)

			mu.Lock()
			defer mu.Unlock()
			summary.NotificationsCreated += created
			summary.Failures += failures
			if ownerErr != nil {
				errs = multierr.Append(errs, ownerErr)
			} else {
				summary.OwnersProcessed++
			}
			return nil
		})
	}

	_ = g.Wait()

	switch {
	case errs == nil:
		metrics.EvaluationRuns.WithLabelValues("success").Inc()
	default:
		metrics.EvaluationRuns.WithLabelValues("partial").Inc()
	}

	return summary, errs
}

// processOwner evaluates all of one owner's vehicles against all document
// types. It returns the number of notifications created and the number of
// failed tuples; err is non-nil when any tuple failed, in which case the
// watermark is not advanced and the whole batch retries on the next tick.
func (r *Runner) processOwner(ctx context.Context, owner DueOwner, now time.Time, today string) (created, failures int, err error) {
	pref, err := r.prefs.Get(ctx, owner.OwnerID)
	if err != nil {
		metrics.TupleFailures.Inc()
		return 0, 1, fmt.Errorf("runner: load preferences for %s: %w", owner.OwnerID, err)
	}

	vehicles, err := r.vehicles.ListByOwner(ctx, owner.OwnerID)
	if err != nil {
		metrics.TupleFailures.Inc()
		return 0, 1, fmt.Errorf("runner: list vehicles for %s: %w", owner.OwnerID, err)
	}

	var errs error
	for _, vehicle := range vehicles {
		for _, doc := range DocumentTypes() {
			expiry := ExpiryOf(vehicle, doc)
			state := Classify(expiry, pref.DaysBefore, now, r.loc)
			if !state.AlertWorthy() {
				continue
			}

			expiryDate := DateKey(*expiry, r.loc)
			should, key, dedupErr := r.dedup.ShouldNotify(ctx, vehicle.ID, doc, expiryDate, state)
			if dedupErr != nil {
				failures++
				metrics.TupleFailures.Inc()
				errs = multierr.Append(errs, dedupErr)
				continue
			}
			if !should {
				continue
			}

			rec := NotificationRecord{
				Key:                key,
				OwnerID:            owner.OwnerID,
				RegistrationNumber: vehicle.RegistrationNumber,
				Title:              NotificationTitle(doc, state),
				Message:            NotificationMessage(vehicle.RegistrationNumber, doc, state),
			}

			wasCreated, createErr := r.notifications.CreateIfAbsent(ctx, rec)
			if createErr != nil {
				failures++
				metrics.TupleFailures.Inc()
				errs = multierr.Append(errs, fmt.Errorf("runner: create notification %s/%s: %w", vehicle.ID, doc, createErr))
				continue
			}
			if !wasCreated {
				// Lost a create race: the other writer won, which is success.
				continue
			}

			created++
			metrics.NotificationsCreated.WithLabelValues(string(doc), string(key.StateClass)).Inc()
			r.deliver(ctx, owner, pref, rec)
		}
	}

	if errs != nil {
		return created, failures, errs
	}

	if err := r.schedule.MarkEvaluated(ctx, owner.OwnerID, today); err != nil {
		metrics.TupleFailures.Inc()
		return created, failures + 1, fmt.Errorf("runner: advance watermark for %s: %w", owner.OwnerID, err)
	}

	metrics.OwnersEvaluated.Inc()
	return created, failures, nil
}

// deliver hands a freshly created notification to the mailer when the owner
// has email enabled. Delivery is best-effort: the persisted record is the
// source of truth and a send failure never fails the tuple.
func (r *Runner) deliver(ctx context.Context, owner DueOwner, pref Preference, rec NotificationRecord) {
	if r.mailer == nil || !pref.EmailEnabled || owner.Email == "" {
		return
	}

	err := r.mailer.Send(ctx, mail.Message{
		To:      []string{owner.Email},
		Subject: rec.Title,
		Body:    rec.Message,
	})
	if err != nil && !errors.Is(err, mail.ErrDisabled) {
		r.log.Warn("email delivery failed",
			zap.String("owner_id", owner.OwnerID),
			zap.String("vehicle_id", rec.Key.VehicleID),
			zap.Error(err),
		)
	}
}

func (r *Runner) acquire(ownerID string) bool {
	_, loaded := r.inFlight.LoadOrStore(ownerID, struct{}{})
	return !loaded
}

func (r *Runner) release(ownerID string) {
	r.inFlight.Delete(ownerID)
}

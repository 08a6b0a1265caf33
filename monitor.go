package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

const defaultCheckInterval = 10 * time.Second

// Monitor enforces the idle timeout: activity signals slide the expiry
// forward, and a polling clock forces logout once the durable expiry has
// passed. Expiry is detected within one polling interval of the
// deadline. Passive time never extends a session.
type Monitor struct {
	store     *Store
	interval  time.Duration
	now       func() time.Time
	onExpired func()
	activity  chan struct{}
	running   atomic.Bool
}

// NewMonitor creates a Monitor over store. Run it with Run.
func NewMonitor(store *Store, options ...MonitorOption) *Monitor {
	m := &Monitor{
		store:    store,
		interval: defaultCheckInterval,
		now:      time.Now,
		activity: make(chan struct{}, 1),
	}
	for _, opt := range options {
		opt(m)
	}

	return m
}

// Activity records a user-activity signal (pointer movement, key press,
// click, scroll). Never blocks; signals arriving while one is already
// pending coalesce, which is harmless since each one would stamp the
// same expiry.
func (m *Monitor) Activity() {
	select {
	case m.activity <- struct{}{}:
	default:
	}
}

// Run drives the monitor until ctx ends. The ticker and the activity
// subscription live exactly as long as this call: teardown is bound to
// the context, so every registration is released however the scope
// exits. A Monitor runs at most one loop at a time.
func (m *Monitor) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return errors.New("monitor is already running")
	}
	defer m.running.Store(false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.activity:
			if err := m.store.Extend(m.now()); err != nil {
				logger.Ctx(ctx).Error(errors.Wrap(err, "session.Store.Extend()"))
			}
		case <-ticker.C:
			expired, err := m.store.CheckExpiry(m.now())
			if err != nil {
				logger.Ctx(ctx).Error(errors.Wrap(err, "session.Store.CheckExpiry()"))
			}
			if expired {
				logger.Ctx(ctx).Info("session expired")
				if m.onExpired != nil {
					m.onExpired()
				}
			}
		}
	}
}

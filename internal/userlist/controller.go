// Package userlist drives the user list screen: loads with bounded retry,
// create and delete flows, and one-shot notifications.
package userlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/roster/internal/domain"
)

const (
	// DefaultMaxRetries bounds automatic retries of a failed load
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed wait between load attempts
	DefaultRetryDelay = 3 * time.Second

	defaultEventBuffer = 16
)

// Option configures a Controller
type Option func(*Controller)

// WithRetry sets the retry bound and the fixed delay between attempts
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Controller) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithLocalizer sets the message source for events
func WithLocalizer(l Localizer) Option {
	return func(c *Controller) {
		if l != nil {
			c.localizer = l
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp loaded users
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns the screen State. All mutations go through update, which
// holds mu only for the mutation itself: never across a network call or a
// retry wait.
type Controller struct {
	repo       domain.UserRepository
	localizer  Localizer
	logger     *slog.Logger
	now        func() time.Time
	maxRetries int
	retryDelay time.Duration

	mu    sync.Mutex
	state State

	states *Broadcaster[State]
	events *Broadcaster[Event]

	// Lifecycle
	ctx      context.Context
	cancel   context.CancelFunc
	lifeMu   sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewController creates a controller with default State. Background work
// runs until ctx is cancelled or Close is called.
func NewController(ctx context.Context, repo domain.UserRepository, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		repo:       repo,
		localizer:  DefaultCatalog(),
		logger:     slog.Default(),
		now:        time.Now,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		states:     NewBroadcaster[State](true),
		events:     NewBroadcaster[Event](false),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SubscribeState streams state snapshots. A slow subscriber only ever
// misses intermediate snapshots, never the latest one.
func (c *Controller) SubscribeState() (<-chan State, func()) {
	return c.states.Subscribe(1)
}

// SubscribeEvents streams one-shot events emitted after the call.
// Events that do not fit in the subscriber's buffer are dropped.
func (c *Controller) SubscribeEvents() (<-chan Event, func()) {
	return c.events.Subscribe(defaultEventBuffer)
}

// Dispatch applies an action. State changes that need no network happen
// before Dispatch returns; network work continues in the background.
func (c *Controller) Dispatch(action Action) {
	if c.ctx.Err() != nil {
		return
	}

	switch a := action.(type) {
	case ScreenReady:
		c.loadUsers(false, false)
	case Refresh:
		c.loadUsers(true, a.UserGesture)
	case RequestCreate:
		c.update(func(s *State) {
			s.ShowCreateDialog = true
		})
	case ConfirmCreate:
		c.createUser(a.Name, a.Email)
	case RequestDelete:
		id := a.ID
		c.update(func(s *State) {
			s.ShowDeleteDialog = true
			s.PendingDeleteID = &id
		})
	case ConfirmDelete:
		c.deleteUser()
	case DismissDialog:
		c.update(func(s *State) {
			s.ShowCreateDialog = false
			s.ShowDeleteDialog = false
			s.PendingDeleteID = nil
		})
	default:
		c.logger.Warn("unknown action", "action", fmt.Sprintf("%T", action))
	}
}

// Wait blocks until all background work has finished
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close cancels background work, waits for it, and closes subscriptions
func (c *Controller) Close() {
	c.lifeMu.Lock()
	c.closed = true
	c.lifeMu.Unlock()

	c.cancel()
	c.inflight.Wait()
	c.states.Close()
	c.events.Close()
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.states.Publish(c.state.clone())
}

func (c *Controller) emit(ev Event) {
	c.logger.Debug("event", "type", fmt.Sprintf("%T", ev))
	c.events.Publish(ev)
}

// launch runs fn in the background unless the controller is closed
func (c *Controller) launch(fn func(ctx context.Context)) {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if c.closed {
		return
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		fn(c.ctx)
	}()
}

func (c *Controller) message(kind domain.ErrorKind) string {
	return c.localizer.Localize(MessageKey(kind))
}

func (c *Controller) loadUsers(force, userGesture bool) {
	if !force && c.State().HasLoadedOnce {
		return
	}

	c.update(func(s *State) {
		s.IsLoading = !userGesture
		s.IsRefreshing = userGesture
	})
	c.launch(func(ctx context.Context) {
		c.runLoad(ctx, userGesture)
	})
}

func (c *Controller) runLoad(ctx context.Context, userGesture bool) {
	for retries := 0; ; retries++ {
		if retries > 0 {
			c.update(func(s *State) {
				s.IsLoading = !userGesture
				s.IsRefreshing = userGesture
			})
		}

		result, err := c.repo.ListLatest(ctx)
		if err != nil {
			c.abort(ctx, "load users", err, func(msg string) Event { return LoadFailed{Message: msg} })
			return
		}

		if users, ok := result.Value(); ok {
			stamped := domain.Stamp(users, c.now())
			c.update(func(s *State) {
				s.Users = stamped
				s.IsLoading = false
				s.IsRefreshing = false
				s.HasLoadedOnce = true
			})
			c.logger.Debug("loaded users", "count", len(stamped), "attempts", retries+1)
			return
		}

		kind, _ := result.Kind()
		c.update(func(s *State) {
			s.IsLoading = false
			s.IsRefreshing = false
		})
		c.emit(LoadFailed{Message: c.message(kind)})

		if !kind.Transient() || retries >= c.maxRetries {
			c.logger.Warn("load users failed", "kind", kind, "attempts", retries+1)
			return
		}

		c.logger.Warn("load users failed, will retry",
			"kind", kind,
			"attempt", retries+1,
			"maxRetries", c.maxRetries,
			"delay", c.retryDelay,
		)
		if err := sleep(ctx, c.retryDelay); err != nil {
			c.logger.Debug("load retry cancelled", "error", err)
			return
		}
	}
}

func (c *Controller) createUser(name, email string) {
	c.update(func(s *State) {
		s.ShowCreateDialog = false
		s.IsLoading = true
	})

	c.launch(func(ctx context.Context) {
		result, err := c.repo.Create(ctx, name, email)
		if err != nil {
			c.abort(ctx, "create user", err, func(msg string) Event { return OperationFailed{Message: msg} })
			return
		}

		if result.IsSuccess() {
			c.Dispatch(Refresh{UserGesture: false})
			c.emit(UserCreated{})
			return
		}

		kind, _ := result.Kind()
		msg := c.message(kind)
		if kind == domain.KindConflict {
			msg = c.localizer.Localize(KeyEmailExists)
		}
		c.update(func(s *State) {
			s.IsLoading = false
		})
		c.logger.Warn("create user failed", "kind", kind)
		c.emit(OperationFailed{Message: msg})
	})
}

func (c *Controller) deleteUser() {
	var id int64
	pending := false
	c.update(func(s *State) {
		if s.PendingDeleteID == nil {
			return
		}
		id, pending = *s.PendingDeleteID, true
		s.ShowDeleteDialog = false
		s.PendingDeleteID = nil
		s.IsLoading = true
	})
	if !pending {
		return
	}

	c.launch(func(ctx context.Context) {
		result, err := c.repo.Delete(ctx, id)
		if err != nil {
			c.abort(ctx, "delete user", err, func(msg string) Event { return OperationFailed{Message: msg} })
			return
		}

		if result.IsSuccess() {
			c.Dispatch(Refresh{UserGesture: false})
			c.emit(UserDeleted{})
			return
		}

		kind, _ := result.Kind()
		c.update(func(s *State) {
			s.IsLoading = false
		})
		c.logger.Warn("delete user failed", "id", id, "kind", kind)
		c.emit(OperationFailed{Message: c.message(kind)})
	})
}

// abort handles the non-Result error of a repository call. Cancellation
// unwinds silently; anything else is a defect and is reported once.
func (c *Controller) abort(ctx context.Context, op string, err error, failed func(msg string) Event) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.logger.Debug(op+" cancelled", "error", err)
		return
	}

	c.logger.Error(op+" failed", "error", err)
	c.update(func(s *State) {
		s.IsLoading = false
		s.IsRefreshing = false
	})
	c.emit(failed(c.message(domain.KindUnknown)))
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package navigation decides which screen graph is active from the session
// state and owns the login, signup and logout transitions.
package navigation

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"homehub/models"
	"homehub/services"
	"homehub/utils/errors"
	"homehub/utils/logger"
	"homehub/utils/validate"
)

type State string

const (
	// StateLoading is the transient state before the stored session has been read.
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Controller is the single owner of session state for the process.
type Controller struct {
	mu    sync.RWMutex
	state State
	user  *models.User

	credentials   *services.CredentialService
	sessions      *services.SessionService
	listingExists func(int) bool
	notifExists   func(string) bool
	log           *zap.Logger
}

type Options struct {
	Credentials *services.CredentialService
	Sessions    *services.SessionService
	// ListingExists validates PropertyDetails params. Optional.
	ListingExists func(int) bool
	// NotificationExists validates Notifications params. Optional.
	NotificationExists func(string) bool
	Logger             *zap.Logger
}

func NewController(opts Options) *Controller {
	return &Controller{
		state:         StateLoading,
		credentials:   opts.Credentials,
		sessions:      opts.Sessions,
		listingExists: opts.ListingExists,
		notifExists:   opts.NotificationExists,
		log:           logger.OrNop(opts.Logger),
	}
}

// Start reads the stored session once and commits to a graph.
func (c *Controller) Start(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return c.state
	}
	if user := c.sessions.LoadSession(ctx); user != nil {
		c.user = user
		c.state = StateAuthenticated
		c.log.Info("Restored session", zap.String("user_id", user.PublicID))
	} else {
		c.state = StateUnauthenticated
	}
	return c.state
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentUser returns a copy of the session user, or false outside StateAuthenticated.
func (c *Controller) CurrentUser() (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateAuthenticated || c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

// Login validates the form, checks credentials and opens a session.
func (c *Controller) Login(ctx context.Context, email, password string) (models.User, error) {
	form, err := validate.Login(email, password)
	if err != nil {
		return models.User{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUnauthenticated {
		return models.User{}, errors.ErrInvalidState
	}

	user, err := c.credentials.FindUser(ctx, form.Email, form.Password)
	if err != nil {
		c.log.Info("Login rejected", zap.String("code", errors.CodeOf(err)))
		return models.User{}, err
	}
	c.authenticateLocked(ctx, user)
	return user, nil
}

// Signup validates the form, registers the user and opens a session.
func (c *Controller) Signup(ctx context.Context, username, email, password string) (models.User, error) {
	form, err := validate.Signup(username, email, password)
	if err != nil {
		return models.User{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUnauthenticated {
		return models.User{}, errors.ErrInvalidState
	}

	user, err := c.credentials.Register(ctx, form.Username, form.Email, form.Password)
	if err != nil {
		c.log.Info("Signup rejected", zap.String("code", errors.CodeOf(err)))
		return models.User{}, err
	}
	c.authenticateLocked(ctx, user)
	return user, nil
}

// authenticateLocked persists the session and switches graphs. A failed
// write only costs the next launch its auto-login.
func (c *Controller) authenticateLocked(ctx context.Context, user models.User) {
	if err := c.sessions.SaveSession(ctx, user); err != nil {
		c.log.Warn("Session not persisted, continuing in memory", zap.String("user_id", user.PublicID), zap.Error(err))
	}
	c.user = &user
	c.state = StateAuthenticated
	c.log.Info("User authenticated", zap.String("user_id", user.PublicID))
}

// Logout clears the stored session and returns to the unauthenticated graph.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated {
		return errors.ErrInvalidState
	}
	if err := c.sessions.ClearSession(ctx); err != nil {
		c.log.Warn("Stored session not cleared", zap.Error(err))
	}
	c.log.Info("User logged out", zap.String("user_id", c.user.PublicID))
	c.user = nil
	c.state = StateUnauthenticated
	return nil
}

// Graph returns the screens of the active state.
func (c *Controller) Graph() Graph {
	return graphFor(c.State())
}

// Navigate resolves a destination against the active graph.
func (c *Controller) Navigate(d Destination, params map[string]string) (Route, error) {
	if !c.Graph().has(d) {
		return Route{}, errors.NewAPIError(errors.ErrInvalidState.Code, "Destination not available", errors.ErrInvalidState.Status, string(d))
	}
	return resolve(d, params, c.listingExists, c.notifExists)
}

package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/presencedash/models"
)

// ErrStaleResponse is returned by Select when a newer selection was made
// while its metric was downloading. The stale result is not rendered.
var ErrStaleResponse = errors.New("response superseded by a newer selection")

var errInvalidSelection = errors.New("invalid user selection")

type State int

const (
	StateInitial State = iota
	StateDirectoryLoading
	StateIdle
	StateMetricLoading
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateDirectoryLoading:
		return "directory_loading"
	case StateIdle:
		return "idle"
	case StateMetricLoading:
		return "metric_loading"
	case StateRendered:
		return "rendered"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

type DirectoryLoader interface {
	DownloadUsers(ctx context.Context) ([]models.User, error)
}

type MetricFetcher interface {
	DownloadMetric(ctx context.Context, metric string, userID int) ([]byte, error)
}

// Fetcher is what a Controller needs from the presence API.
type Fetcher interface {
	DirectoryLoader
	MetricFetcher
}

type Renderer interface {
	Render(target *Surface, table *models.Table, spec ChartSpec) error
}

// Controller binds one selection control, one metric, one table schema and
// one chart spec. Select may be called concurrently; only the completion of
// the latest selection is rendered.
type Controller struct {
	cfg      Config
	fetcher  Fetcher
	renderer Renderer
	surface  *Surface
	logger   *slog.Logger
	metrics  *Metrics

	mu    sync.Mutex
	state State
	users []models.User
	seq   uint64
}

// NewController binds a view to its fetcher and renderer. A nil logger uses
// slog.Default; nil metrics record nothing.
func NewController(cfg Config, fetcher Fetcher, renderer Renderer, logger *slog.Logger, metrics *Metrics) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:      cfg,
		fetcher:  fetcher,
		renderer: renderer,
		surface:  NewSurface(),
		logger:   logger.With(slog.String("view", cfg.Name)),
		metrics:  metrics,
	}
}

// Config returns the view this controller drives.
func (c *Controller) Config() Config { return c.cfg }

// Surface returns the chart target the controller draws into.
func (c *Controller) Surface() *Surface { return c.surface }

// State reports where the controller is in its load and select cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Options returns the users for the selection control, in directory order.
func (c *Controller) Options() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	users := make([]models.User, len(c.users))
	copy(users, c.users)
	return users
}

// LoadDirectory fills the selection control from the user directory. On
// failure the control stays empty and the error is shown inline.
func (c *Controller) LoadDirectory(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateDirectoryLoading
	c.mu.Unlock()

	users, err := c.fetcher.DownloadUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDirectoryLoading {
		c.state = StateIdle
	}
	if err != nil {
		c.users = nil
		c.surface.hide(userMessage(err))
		c.logger.Warn("failed to load user directory", slog.Any("error", err))
		return err
	}
	c.users = users
	c.logger.Debug("user directory loaded", slog.Int("users", len(users)))
	return nil
}

// Select reacts to a change of the selection control. An empty value hides
// the chart without downloading anything.
func (c *Controller) Select(ctx context.Context, value string) (Snapshot, error) {
	value = strings.TrimSpace(value)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if value == "" {
		c.state = StateIdle
		c.surface.hide("")
		c.mu.Unlock()
		c.logger.Debug("selection cleared")
		return c.surface.Snapshot(), nil
	}
	userID, err := strconv.Atoi(value)
	if err != nil || userID < 0 {
		defer c.mu.Unlock()
		return c.failLocked(fmt.Errorf("%w: %q", errInvalidSelection, value))
	}
	c.state = StateMetricLoading
	c.surface.showLoading()
	spec := c.chartSpecLocked(userID)
	c.mu.Unlock()

	c.logger.Debug("downloading metric", slog.Int("user_id", userID), slog.Uint64("seq", seq))
	raw, err := c.fetcher.DownloadMetric(ctx, c.cfg.Metric, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.metrics.staleResponse(c.cfg.Name)
		c.logger.Debug("discarding stale response", slog.Int("user_id", userID), slog.Uint64("seq", seq), slog.Uint64("latest", c.seq))
		return c.surface.Snapshot(), ErrStaleResponse
	}
	if err != nil {
		return c.failLocked(err)
	}

	table, err := models.BuildTable(c.cfg.Schema, raw)
	if err != nil {
		return c.failLocked(err)
	}
	if err := c.renderer.Render(c.surface, table, spec); err != nil {
		return c.failLocked(err)
	}
	c.surface.showChart()
	c.state = StateRendered
	c.metrics.outcome(c.cfg.Name, "rendered")
	c.logger.Debug("chart rendered", slog.Int("user_id", userID), slog.Int("rows", table.Len()))
	return c.surface.Snapshot(), nil
}

func (c *Controller) chartSpecLocked(userID int) ChartSpec {
	spec := c.cfg.Chart
	spec.Title = c.cfg.Title()
	for _, u := range c.users {
		if u.ID == userID {
			spec.Subtitle = u.Name
			break
		}
	}
	return spec
}

// failLocked resets the view to idle with the chart hidden and err shown
// inline. c.mu must be held.
func (c *Controller) failLocked(err error) (Snapshot, error) {
	c.state = StateIdle
	c.surface.hide(userMessage(err))
	c.metrics.outcome(c.cfg.Name, outcomeOf(err))
	c.logger.Warn("view reset after error", slog.Any("error", err))
	return c.surface.Snapshot(), err
}

func outcomeOf(err error) string {
	var (
		malformed *models.MalformedPayloadError
		fetchErr  *models.MetricFetchError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "fetch_error"
	case errors.As(err, &malformed):
		return "malformed"
	case errors.Is(err, errInvalidSelection):
		return "invalid_selection"
	}
	return "render_error"
}

// userMessage is the inline notice shown for err.
func userMessage(err error) string {
	var (
		malformed *models.MalformedPayloadError
		dirErr    *models.DirectoryFetchError
		fetchErr  *models.MetricFetchError
	)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return "User details not found."
	case errors.As(err, &dirErr):
		return "Could not load the user list."
	case errors.As(err, &fetchErr):
		return "Could not load presence data. Please try again."
	case errors.As(err, &malformed):
		return "The server returned data this chart cannot show."
	case errors.Is(err, errInvalidSelection):
		return "Please choose a user from the list."
	}
	return "Could not draw the chart."
}

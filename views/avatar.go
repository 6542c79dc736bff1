package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

type AvatarFetcher interface {
	DownloadAvatarURL(ctx context.Context, userID int) (string, error)
}

// Avatar is what the avatar view shows: an image, or an inline message.
type Avatar struct {
	URL     string
	Message string
}

// AvatarController shows the picture of the selected user. It follows the
// same error policy as the chart views: failures clear the image and show
// a message inline.
type AvatarController struct {
	fetcher AvatarFetcher
	baseURL string
	logger  *slog.Logger

	mu      sync.Mutex
	seq     uint64
	current Avatar
}

// NewAvatarController resolves avatar paths against baseURL.
func NewAvatarController(fetcher AvatarFetcher, baseURL string, logger *slog.Logger) *AvatarController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvatarController{
		fetcher: fetcher,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With(slog.String("view", "avatar")),
	}
}

// Current returns the avatar last shown.
func (a *AvatarController) Current() Avatar {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Lookup loads the avatar for the selected value. Results of superseded
// lookups are dropped with ErrStaleResponse.
func (a *AvatarController) Lookup(ctx context.Context, value string) (Avatar, error) {
	value = strings.TrimSpace(value)

	a.mu.Lock()
	a.seq++
	seq := a.seq
	if value == "" {
		a.current = Avatar{}
		a.mu.Unlock()
		return Avatar{}, nil
	}
	userID, err := strconv.Atoi(value)
	if err != nil {
		defer a.mu.Unlock()
		return a.failLocked(fmt.Errorf("%w: %q", errInvalidSelection, value))
	}
	a.mu.Unlock()

	path, err := a.fetcher.DownloadAvatarURL(ctx, userID)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		return a.current, ErrStaleResponse
	}
	if err != nil {
		return a.failLocked(err)
	}
	a.current = Avatar{URL: a.baseURL + path}
	return a.current, nil
}

func (a *AvatarController) failLocked(err error) (Avatar, error) {
	a.current = Avatar{Message: userMessage(err)}
	a.logger.Warn("avatar lookup failed", slog.Any("error", err))
	return a.current, err
}

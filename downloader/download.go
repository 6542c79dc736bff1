package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/presencedash/models"
)

// Metric endpoints served under /api/v1/.
const (
	MeanTimeMonth    = "mean_time_month"
	MeanTimeWeekday  = "mean_time_weekday"
	PresenceWeekday  = "presence_weekday"
	PresenceStartEnd = "presence_start_end"
)

// PresenceDownloader downloads users and presence metrics from the
// presence analyzer API.
type PresenceDownloader struct {
	BaseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewPresenceDownloader creates a new downloader instance
func NewPresenceDownloader(baseURL string, timeout time.Duration, logger *slog.Logger) *PresenceDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresenceDownloader{
		BaseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// statusError carries a non-200 response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// DownloadUsers downloads the user directory.
func (fd *PresenceDownloader) DownloadUsers(ctx context.Context) ([]models.User, error) {
	body, err := fd.getData(ctx, fd.BaseURL+"/users")
	if err != nil {
		return nil, &models.DirectoryFetchError{StatusCode: statusOf(err), Err: err}
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, &models.DirectoryFetchError{Err: fmt.Errorf("failed to parse users JSON: %w", err)}
	}
	fd.logger.Debug("user directory downloaded", slog.Int("users", len(users)))
	return users, nil
}

// DownloadMetric downloads the raw payload of one metric for one user.
// The body is returned untouched; shaping it is the table builder's job.
func (fd *PresenceDownloader) DownloadMetric(ctx context.Context, metric string, userID int) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/%d", fd.BaseURL, metric, userID)
	body, err := fd.getData(ctx, endpoint)
	if err != nil {
		return nil, metricError(metric, userID, err)
	}
	fd.logger.Debug("metric downloaded",
		slog.String("metric", metric),
		slog.Int("user_id", userID),
		slog.Int("bytes", len(body)))
	return body, nil
}

// DownloadAvatarURL returns the relative avatar path of a user.
func (fd *PresenceDownloader) DownloadAvatarURL(ctx context.Context, userID int) (string, error) {
	endpoint := fd.BaseURL + "/user_avatar_url/" + strconv.Itoa(userID)
	body, err := fd.getData(ctx, endpoint)
	if err != nil {
		return "", metricError("user_avatar_url", userID, err)
	}

	var path string
	if err := json.Unmarshal(body, &path); err != nil {
		return "", &models.MetricFetchError{
			Metric: "user_avatar_url",
			UserID: userID,
			Err:    &models.MalformedPayloadError{Row: -1, Reason: "avatar url is not a string", Err: err},
		}
	}
	return path, nil
}

func metricError(metric string, userID int, err error) error {
	status := statusOf(err)
	if status == http.StatusNotFound {
		err = fmt.Errorf("%w: %w", models.ErrUserNotFound, err)
	}
	return &models.MetricFetchError{Metric: metric, UserID: userID, StatusCode: status, Err: err}
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func (fd *PresenceDownloader) getData(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := fd.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(bodyBytes))}
	}
	return bodyBytes, nil
}

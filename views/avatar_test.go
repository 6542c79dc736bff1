package views

import (
	"context"
	"fmt"
	"testing"

	"github.com/presencedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvatars map[int]string

func (f fakeAvatars) DownloadAvatarURL(ctx context.Context, userID int) (string, error) {
	path, ok := f[userID]
	if !ok {
		return "", &models.MetricFetchError{
			Metric:     "user_avatar_url",
			UserID:     userID,
			StatusCode: 404,
			Err:        fmt.Errorf("%w: not found", models.ErrUserNotFound),
		}
	}
	return path, nil
}

func TestAvatarLookup(t *testing.T) {
	a := NewAvatarController(fakeAvatars{5: "/api/images/users/5"}, "https://intranet.example.com/", nil)

	got, err := a.Lookup(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, Avatar{URL: "https://intranet.example.com/api/images/users/5"}, got)
	assert.Equal(t, got, a.Current())
}

func TestAvatarLookupFailureClearsImage(t *testing.T) {
	a := NewAvatarController(fakeAvatars{5: "/api/images/users/5"}, "https://intranet.example.com", nil)
	_, err := a.Lookup(context.Background(), "5")
	require.NoError(t, err)

	got, err := a.Lookup(context.Background(), "6")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Empty(t, got.URL)
	assert.Equal(t, "User details not found.", got.Message)
}

func TestAvatarLookupEmptySelection(t *testing.T) {
	a := NewAvatarController(fakeAvatars{}, "", nil)
	got, err := a.Lookup(context.Background(), " ")
	require.NoError(t, err)
	assert.Equal(t, Avatar{}, got)

	_, err = a.Lookup(context.Background(), "x")
	assert.ErrorIs(t, err, errInvalidSelection)
}

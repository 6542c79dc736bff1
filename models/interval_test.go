package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

func TestTimeOfDayRoundTrip(t *testing.T) {
	for s := 0; s < SecondsPerDay; s++ {
		tod, err := SecondsToTimeOfDay(float64(s))
		if err != nil {
			t.Fatalf("SecondsToTimeOfDay(%d): %v", s, err)
		}
		str := tod.String()
		if !clockPattern.MatchString(str) {
			t.Fatalf("%d formatted as %q", s, str)
		}
		back, err := ParseTimeOfDay(str)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", str, err)
		}
		if back.Seconds() != s || tod.Seconds() != s {
			t.Fatalf("%d decoded as %d", s, back.Seconds())
		}
	}
}

func TestSecondsToTimeOfDay(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{1800, "00:30:00"},
		{3600, "01:00:00"},
		{30047.5, "08:20:47"},
		{86399, "23:59:59"},
		{86400, "00:00:00"},
		{90061, "01:01:01"},
		{1e19, "17:46:40"},
		{1e20, "09:46:40"},
		{math.MaxFloat64, "14:26:08"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.seconds), func(t *testing.T) {
			tod, err := SecondsToTimeOfDay(tt.seconds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tod.String())
			assert.GreaterOrEqual(t, tod.Seconds(), 0)
			assert.Less(t, tod.Seconds(), SecondsPerDay)
		})
	}
}

func TestSecondsToTimeOfDayRejectsInvalid(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := SecondsToTimeOfDay(v)
		var malformed *MalformedPayloadError
		assert.True(t, errors.As(err, &malformed), "value %v", v)
	}
}

func TestTimeOfDayComponents(t *testing.T) {
	tod, err := SecondsToTimeOfDay(13*3600 + 7*60 + 9)
	require.NoError(t, err)
	assert.Equal(t, 13, tod.Hour())
	assert.Equal(t, 7, tod.Minute())
	assert.Equal(t, 9, tod.Second())
}

func TestParseClockString(t *testing.T) {
	dt, err := ParseClockString("Mon", "09:15:30")
	require.NoError(t, err)
	assert.Equal(t, "Mon", dt.Label)
	assert.Equal(t, 9*3600+15*60+30, dt.Time.Seconds())
	assert.Equal(t, "09:15:30", dt.String())

	for _, bad := range []string{"", "9:00", "25:00:00", "09:61:00", "nine"} {
		_, err := ParseClockString("Mon", bad)
		assert.Error(t, err, bad)
	}
}

package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	t.Parallel()
	singapore, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	// 2024-03-10 18:30 UTC is already 2024-03-11 in Singapore.
	instant := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(instant, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), DateOf(instant, singapore))
	assert.Equal(t, DateOf(instant, time.UTC), DateOf(instant, nil))
}

func TestNowAndToday(t *testing.T) {
	t.Parallel()
	singapore, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	clock := FixedClock{T: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), Loc: singapore}

	now, today := NowAndToday(clock)

	assert.True(t, now.Equal(clock.T))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), today)
}

func TestSystemClock(t *testing.T) {
	t.Parallel()

	clock := NewSystemClock(nil)
	assert.Equal(t, time.UTC, clock.Location())
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}

func TestParseTimezone(t *testing.T) {
	t.Parallel()

	loc, err := ParseTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ParseTimezone("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	_, err = ParseTimezone("Mars/Olympus")
	assert.Error(t, err)
}

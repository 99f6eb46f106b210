package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReal_Now(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestFixed_Now(t *testing.T) {
	at := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	c := Fixed{T: at}

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

// stepClock advances by step on every read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (s *stepClock) Now() time.Time {
	now := s.t
	s.t = s.t.Add(s.step)
	return now
}

func TestOffset_StartsAtChosenInstantAndAdvances(t *testing.T) {
	base := &stepClock{t: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}
	start := time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC)

	c := NewOffset(start, base)

	assert.Equal(t, start.Add(time.Second), c.Now())
	assert.Equal(t, start.Add(2*time.Second), c.Now())
}

func TestOffset_DefaultsToRealClock(t *testing.T) {
	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewOffset(start, nil)

	got := c.Now()
	assert.False(t, got.Before(start))
	assert.WithinDuration(t, start, got, time.Minute)
}

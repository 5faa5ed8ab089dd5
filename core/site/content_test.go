package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveTestimonial(t *testing.T) {
	tests := []struct {
		name     string
		unix     int64
		interval time.Duration
		n        int
		want     int
	}{
		{name: "start", unix: 0, interval: 5 * time.Second, n: 3, want: 0},
		{name: "same window", unix: 4, interval: 5 * time.Second, n: 3, want: 0},
		{name: "next window", unix: 5, interval: 5 * time.Second, n: 3, want: 1},
		{name: "wraps", unix: 15, interval: 5 * time.Second, n: 3, want: 0},
		{name: "sub-second interval", unix: 7, interval: time.Millisecond, n: 3, want: 1},
		{name: "before epoch", unix: -5, interval: 5 * time.Second, n: 3, want: 2},
		{name: "no testimonials", unix: 10, interval: 5 * time.Second, n: 0, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveTestimonial(time.Unix(tt.unix, 0), tt.interval, tt.n))
		})
	}
}

func TestLanding(t *testing.T) {
	c := Landing()
	assert.Len(t, c.Programs, 4)
	assert.Len(t, c.Team, 4)
	assert.Len(t, c.Testimonials, 3)
	assert.Equal(t, "contact@elegantux.com", c.Contact.Email)
}

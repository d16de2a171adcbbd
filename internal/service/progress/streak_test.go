package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, offset int) time.Time {
	t.Helper()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestCalculateStreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dates func(t *testing.T) []time.Time
		want  int
	}{
		{
			name:  "no ended sessions",
			dates: func(t *testing.T) []time.Time { return nil },
			want:  0,
		},
		{
			name: "single session today",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, 0)}
			},
			want: 1,
		},
		{
			name: "three consecutive days",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, 0), day(t, -1), day(t, -2)}
			},
			want: 3,
		},
		{
			name: "gap stops the walk",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, 0), day(t, -2)}
			},
			want: 1,
		},
		{
			name: "streak survives until end of current day",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, -1), day(t, -2)}
			},
			want: 2,
		},
		{
			name: "last session two days ago",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, -2), day(t, -3)}
			},
			want: 0,
		},
		{
			name: "duplicate dates do not inflate the count",
			dates: func(t *testing.T) []time.Time {
				return []time.Time{day(t, 0), day(t, 0), day(t, -1)}
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalculateStreak(tt.dates(t), now))
		})
	}
}

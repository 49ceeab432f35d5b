package motivation

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionFeedback(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		correct  int
		want     string
	}{
		{"no quizzes", 0, 0, "Good reading session! Try some quizzes next time to test yourself! 📚"},
		{"perfect", 5, 5, "PERFECT SCORE! You absolutely crushed it! 🎯"},
		{"excellent", 5, 4, "Excellent! 80% accuracy! You really know this material! 🌟"},
		{"good", 10, 7, "Good job! 70% accuracy. Keep practicing! 💪"},
		{"low", 3, 1, "33% - Don't worry! Every mistake is a learning opportunity! 📖"},
		{"zero correct", 4, 0, "0% - Don't worry! Every mistake is a learning opportunity! 📖"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionFeedback(tt.answered, tt.correct))
		})
	}
}

func TestTip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		assert.True(t, slices.Contains(Tips, Tip(r)))
	}
}

func TestEncouragement(t *testing.T) {
	assert.Contains(t, Encouragement(30, 40), "30 DAYS")
	assert.Contains(t, Encouragement(7, 10), "WHOLE WEEK")
	assert.Contains(t, Encouragement(1, 1), "You started")
	assert.Contains(t, Encouragement(0, 3), "Welcome back")
	assert.Contains(t, Encouragement(0, 0), "learning journey")
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		sessions []time.Time
		want     int
	}{
		{"none", nil, 0},
		{"today only", []time.Time{day(10)}, 1},
		{"run ending yesterday", []time.Time{day(9), day(8), day(7)}, 3},
		{"gap breaks run", []time.Time{day(10), day(9), day(7)}, 2},
		{"duplicates count once", []time.Time{day(10), day(10), day(9)}, 2},
		{"stale run", []time.Time{day(5), day(4)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.sessions, now))
		})
	}
}

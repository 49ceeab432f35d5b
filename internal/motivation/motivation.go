// Package motivation produces the encouragement text shown around study
// sessions: accuracy-banded feedback, study tips and streak messages.
package motivation

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	perfectScore = "PERFECT SCORE! You absolutely crushed it! 🎯"
	noQuizzes    = "Good reading session! Try some quizzes next time to test yourself! 📚"
)

// Tips are general study tips, one of which is shown per session.
var Tips = []string{
	"Try the Pomodoro Technique: 25 minutes of focus, then a 5-minute break! 🍅",
	"Teaching someone else is the best way to learn. Explain concepts out loud! 🗣️",
	"Stay hydrated! Your brain works better when you drink enough water. 💧",
	"Take short walks between study sessions to boost memory retention. 🚶",
	"Use active recall: close your notes and try to remember what you just read. 🧠",
	"Get enough sleep! Your brain consolidates memories while you rest. 😴",
	"Break big topics into smaller chunks - it's easier to digest! 🍕",
	"Create mind maps to visualize connections between concepts. 🗺️",
	"Study in different locations to improve memory recall. 📍",
	"Reward yourself after completing study goals! 🎁",
}

// SessionFeedback grades a finished session by accuracy.
func SessionFeedback(answered, correct int) string {
	if answered <= 0 {
		return noQuizzes
	}
	accuracy := float64(correct) / float64(answered) * 100

	switch {
	case accuracy >= 100:
		return perfectScore
	case accuracy >= 80:
		return fmt.Sprintf("Excellent! %.0f%% accuracy! You really know this material! 🌟", accuracy)
	case accuracy >= 60:
		return fmt.Sprintf("Good job! %.0f%% accuracy. Keep practicing! 💪", accuracy)
	default:
		return fmt.Sprintf("%.0f%% - Don't worry! Every mistake is a learning opportunity! 📖", accuracy)
	}
}

// Tip picks a random study tip.
func Tip(r *rand.Rand) string {
	return Tips[r.IntN(len(Tips))]
}

// Encouragement picks the greeting for a student with the given streak of
// consecutive study days and total number of past sessions.
func Encouragement(streak, sessions int) string {
	switch {
	case streak >= 30:
		return "30 DAYS! You've built an incredible habit! 🏆"
	case streak >= 14:
		return "Two weeks of dedication! You're unstoppable! 💪"
	case streak >= 7:
		return "A WHOLE WEEK! You're officially a study machine! 🤖"
	case streak >= 3:
		return "3 days strong! You're building momentum! 🚀"
	case streak >= 1:
		return "You started! That's the hardest part. Keep it up! 🌱"
	case sessions > 0:
		return "Welcome back! Ready to pick up where you left off? 🔄"
	default:
		return "Welcome! Ready to start your learning journey? 🎉"
	}
}

// Streak counts consecutive calendar days, ending today or yesterday, on
// which at least one session happened. Days are taken in now's location.
func Streak(sessions []time.Time, now time.Time) int {
	days := make(map[string]bool, len(sessions))
	for _, ts := range sessions {
		days[ts.In(now.Location()).Format(time.DateOnly)] = true
	}

	day := now
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

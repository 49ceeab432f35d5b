package cmd

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/store"
)

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "json", sample{Name: "bio", Count: 2, Tags: []string{"a"}}))
	assert.Equal(t, "{\n  \"name\": \"bio\",\n  \"count\": 2,\n  \"tags\": [\n    \"a\"\n  ]\n}\n", buf.String())
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "yaml", sample{Name: "bio", Count: 2, Tags: []string{"a", "b"}}))
	assert.Equal(t, "name: bio\ncount: 2\ntags:\n  - a\n  - b\n", buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "xml", sample{})
	assert.ErrorContains(t, err, "unknown output format")
	assert.Empty(t, buf.String())
}

func quizRecord(material string, total, correct int, at time.Time) store.QuizResultRecord {
	return store.QuizResultRecord{
		QuizResultData: store.QuizResultData{
			UserID:       "u1",
			MaterialID:   material,
			QuestionType: "multiple_choice",
			Total:        total,
			Correct:      correct,
		},
		Timestamp: at,
	}
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	history := []store.QuizResultRecord{
		quizRecord("m1", 5, 5, now.Add(-time.Hour)),
		quizRecord("m2", 4, 1, now.AddDate(0, 0, -1)),
		quizRecord("m1", 5, 3, now.AddDate(0, 0, -3)),
	}
	summary := store.QuizSummary{Quizzes: 3, Questions: 14, Correct: 9}
	rng := rand.New(rand.NewPCG(1, 2))

	rep := buildStats("u1", summary, history, map[string]string{"m1": "Biology"}, now, rng)

	assert.Equal(t, "u1", rep.User)
	assert.Equal(t, 3, rep.Quizzes)
	assert.Equal(t, 64, rep.Accuracy)
	assert.Equal(t, 2, rep.Streak)
	assert.NotEmpty(t, rep.Encouragement)
	assert.NotEmpty(t, rep.Tip)
	assert.Contains(t, rep.Feedback, "PERFECT SCORE")
	require.Len(t, rep.Recent, 3)
	assert.Equal(t, "Biology", rep.Recent[0].Material)
	assert.Equal(t, "m2", rep.Recent[1].Material, "unknown materials fall back to the ID")
	assert.Equal(t, 25, rep.Recent[1].Accuracy)
}

func TestBuildStats_Empty(t *testing.T) {
	rep := buildStats("u1", store.QuizSummary{}, nil, nil, time.Now(), rand.New(rand.NewPCG(1, 2)))
	assert.Zero(t, rep.Streak)
	assert.Empty(t, rep.Feedback)
	assert.NotNil(t, rep.Recent)
}

func TestBuildStats_CapsRecent(t *testing.T) {
	now := time.Now()
	var history []store.QuizResultRecord
	for i := range recentShown + 5 {
		history = append(history, quizRecord("m1", 2, 1, now.Add(-time.Duration(i)*time.Minute)))
	}
	rep := buildStats("u1", store.QuizSummary{}, history, nil, now, rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, rep.Recent, recentShown)
}

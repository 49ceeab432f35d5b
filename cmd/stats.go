package cmd

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/studybuddy/internal/motivation"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// recentShown caps the quizzes listed by stats.
const recentShown = 10

type quizLine struct {
	Material     string    `json:"material"`
	QuestionType string    `json:"question_type"`
	Total        int       `json:"total"`
	Correct      int       `json:"correct"`
	Accuracy     int       `json:"accuracy"`
	Taken        time.Time `json:"taken"`
}

type statsReport struct {
	User          string     `json:"user"`
	Quizzes       int        `json:"quizzes"`
	Questions     int        `json:"questions"`
	Correct       int        `json:"correct"`
	Accuracy      int        `json:"accuracy"`
	Streak        int        `json:"streak"`
	Encouragement string     `json:"encouragement"`
	Feedback      string     `json:"feedback,omitempty"`
	Tip           string     `json:"tip"`
	Recent        []quizLine `json:"recent"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics and your study streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		userID := resolveUser(cmd)
		repo := d.store.QuizResultRepo()

		var (
			summary store.QuizSummary
			history []store.QuizResultRecord
			names   = map[string]string{}
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			summary, err = repo.Summary(ctx, userID)
			return err
		})
		g.Go(func() error {
			var err error
			history, err = repo.Recent(ctx, userID, 0)
			return err
		})
		g.Go(func() error {
			items, err := d.store.MaterialRepo().List(ctx)
			for _, m := range items {
				names[m.ID] = m.Name
			}
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		return printResult(cmd, buildStats(userID, summary, history, names, time.Now(), rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))))
	},
}

func buildStats(userID string, summary store.QuizSummary, history []store.QuizResultRecord, names map[string]string, now time.Time, rng *rand.Rand) statsReport {
	days := make([]time.Time, 0, len(history))
	for _, rec := range history {
		days = append(days, rec.Timestamp)
	}
	streak := motivation.Streak(days, now)

	rep := statsReport{
		User:          userID,
		Quizzes:       summary.Quizzes,
		Questions:     summary.Questions,
		Correct:       summary.Correct,
		Accuracy:      summary.Accuracy(),
		Streak:        streak,
		Encouragement: motivation.Encouragement(streak, summary.Quizzes),
		Tip:           motivation.Tip(rng),
		Recent:        []quizLine{},
	}
	if len(history) > 0 {
		last := history[0]
		rep.Feedback = motivation.SessionFeedback(last.Total, last.Correct)
	}
	for _, rec := range history[:min(len(history), recentShown)] {
		name := names[rec.MaterialID]
		if name == "" {
			name = rec.MaterialID
		}
		rep.Recent = append(rep.Recent, quizLine{
			Material:     name,
			QuestionType: rec.QuestionType,
			Total:        rec.Total,
			Correct:      rec.Correct,
			Accuracy:     rec.Accuracy(),
			Taken:        rec.Timestamp,
		})
	}
	return rep
}

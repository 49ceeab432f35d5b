package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/motivation"
	"github.com/abhisek/studybuddy/internal/screens/home"
	"github.com/abhisek/studybuddy/internal/screens/quiz"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/tutor"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take an interactive quiz",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, _ := cmd.Flags().GetString("material")
		return runApp(cmd, ref)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI. When
// ref names a material its quiz starts right away.
func runApp(cmd *cobra.Command, ref string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	userID := resolveUser(cmd)
	svc := d.service(ctx)

	items, err := d.store.MaterialRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("list materials: %w", err)
	}
	materials := make([]home.Material, 0, len(items))
	for _, m := range items {
		materials = append(materials, home.Material{ID: m.ID, Name: m.Name})
	}

	var autostart string
	if ref != "" {
		m, err := d.store.MaterialRepo().Find(ctx, ref)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no material named %q (see `studybuddy material list`)", ref)
		}
		if err != nil {
			return err
		}
		autostart = m.ID
	}

	count, qtype := tutor.DefaultQuizCount, tutor.DefaultQuizType
	if cmd.Flags().Lookup("count") != nil {
		count, _ = cmd.Flags().GetInt("count")
		qtype, _ = cmd.Flags().GetString("type")
	}

	return app.Run(app.Options{Home: home.Config{
		Materials: materials,
		Open: func(materialID string) (quiz.Quizzer, error) {
			sess, err := svc.Open(context.Background(), userID, materialID)
			if err != nil {
				return nil, err
			}
			return sess, nil
		},
		Count:     count,
		Type:      qtype,
		Streak:    studyStreak(ctx, d.store.QuizResultRepo(), userID, d.log),
		Autostart: autostart,
	}})
}

// studyStreak is best effort: the dashboard shows zero on failure.
func studyStreak(ctx context.Context, repo store.QuizResultRepo, userID string, log *logger.Logger) int {
	recs, err := repo.Recent(ctx, userID, 0)
	if err != nil {
		log.Warn("load quiz history", "user_id", userID, "error", err)
		return 0
	}
	days := make([]time.Time, 0, len(recs))
	for _, r := range recs {
		days = append(days, r.Timestamp)
	}
	return motivation.Streak(days, time.Now())
}

func init() {
	playCmd.Flags().StringP("material", "m", "", "Start a quiz on this material right away")
	playCmd.Flags().IntP("count", "n", tutor.DefaultQuizCount, "Number of questions (5, 10, 15 or 20)")
	playCmd.Flags().StringP("type", "t", tutor.DefaultQuizType, "Question type")
}

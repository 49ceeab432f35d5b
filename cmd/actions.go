package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/studybuddy/internal/study"
	"github.com/abhisek/studybuddy/internal/tutor"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz from a material",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		qtype, _ := cmd.Flags().GetString("type")
		return runAction(cmd, func(ctx context.Context, s *study.Session) (tutor.Result, error) {
			return s.GenerateQuiz(ctx, count, qtype)
		})
	},
}

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate flashcards from a material",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return runAction(cmd, func(ctx context.Context, s *study.Session) (tutor.Result, error) {
			return s.GenerateFlashcards(ctx, count)
		})
	},
}

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Ask yourself an open question about a material",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, func(ctx context.Context, s *study.Session) (tutor.Result, error) {
			return s.AskQuestion(ctx)
		})
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Chat with the tutor about a material",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := strings.Join(args, " ")
		return runAction(cmd, func(ctx context.Context, s *study.Session) (tutor.Result, error) {
			return s.Answer(ctx, msg)
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <answer...>",
	Short: "Grade an answer to the last open question (or --question)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer := strings.Join(args, " ")
		return runAction(cmd, func(ctx context.Context, s *study.Session) (tutor.Result, error) {
			return s.CheckAnswer(ctx, question, answer)
		})
	},
}

// runAction opens a session, runs op and prints its result. A failure to
// save history is reported on stderr; the result is still printed.
func runAction(cmd *cobra.Command, op func(context.Context, *study.Session) (tutor.Result, error)) error {
	d, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := op(cmd.Context(), sess)
	if err != nil && res.Kind == "" {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	return printResult(cmd, res)
}

func init() {
	for _, c := range []*cobra.Command{quizCmd, flashcardsCmd, questionCmd, askCmd, checkCmd} {
		c.Flags().StringP("material", "m", "", "Material ID or name")
	}
	quizCmd.Flags().IntP("count", "n", tutor.DefaultQuizCount, "Number of questions (5, 10, 15 or 20)")
	quizCmd.Flags().StringP("type", "t", tutor.DefaultQuizType, "Question type: "+strings.Join(tutor.QuizTypes, ", "))
	flashcardsCmd.Flags().IntP("count", "n", tutor.DefaultFlashcards, "Number of flashcards")
	checkCmd.Flags().StringP("question", "q", "", "Question being answered (defaults to the last question asked)")
}

package cmd

import (
	"os"
	"os/user"
	"strings"

	"github.com/abhisek/studybuddy/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "AI study buddy for your own notes",
	Long:  "StudyBuddy turns uploaded study material into quizzes, flashcards and open questions, and grades your answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STUDYBUDDY_DB env var)")
	pf.String("user", "", "Learner ID for conversation history (overrides STUDYBUDDY_USER env var)")
	pf.String("log-mode", "dev", "Log format: dev or prod")
	pf.StringP("output", "o", "json", "Output format for results: json or yaml")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(materialCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYBUDDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUser picks the learner ID: --user, then STUDYBUDDY_USER, then the
// OS account name.
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); strings.TrimSpace(u) != "" {
		return strings.TrimSpace(u)
	}
	if u := strings.TrimSpace(os.Getenv("STUDYBUDDY_USER")); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

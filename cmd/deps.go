package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/memory"
	"github.com/abhisek/studybuddy/internal/reward"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/study"
	"github.com/abhisek/studybuddy/internal/tutor"
	"github.com/spf13/cobra"
)

// cliRedirect replaces the chat redirect, which talks about a button.
const cliRedirect = "For quizzes, run `studybuddy quiz` or `studybuddy play`! 👆 They create a proper quiz with answer checking. Here I'm better at explaining concepts and answering your questions about the material! 📚"

// deps holds everything a command needs. Close releases it in reverse
// order of acquisition.
type deps struct {
	store   *store.Store
	log     *logger.Logger
	logs    memory.LogStore
	closers []func() error
}

// openDeps opens the logger, the SQLite store and the conversation log
// store (Redis when STUDYBUDDY_REDIS_ADDR is set).
func openDeps(cmd *cobra.Command) (*deps, error) {
	mode, _ := cmd.Flags().GetString("log-mode")
	log, err := logger.New(mode)
	if err != nil {
		return nil, err
	}
	d := &deps{log: log}
	d.closers = append(d.closers, func() error { log.Sync(); return nil })

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)

	if cfg, ok := memory.RedisConfigFromEnv(); ok {
		rs, err := memory.NewRedisStore(cmd.Context(), cfg, log)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect conversation store: %w", err)
		}
		d.logs = rs
		d.closers = append(d.closers, rs.Close)
	} else {
		d.logs = st.ConversationRepo()
	}
	return d, nil
}

// Close releases all resources. Errors are logged, not returned.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && d.log != nil {
			d.log.Warn("close failed", "error", err)
		}
	}
	d.closers = nil
}

// service builds the study service. A missing LLM configuration is not
// fatal: every generation then fails soft with the apology message.
func (d *deps) service(ctx context.Context) *study.Service {
	provider, err := llm.NewProviderFromEnv(ctx, d.store.EventRepo(), d.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	opts := []tutor.Option{
		tutor.WithRewards(reward.NewGiphy(reward.ConfigFromEnv())),
		tutor.WithRedirect(cliRedirect),
		tutor.WithLogger(d.log),
	}
	if on, _ := strconv.ParseBool(os.Getenv("STUDYBUDDY_REWARD_WRONG")); on {
		opts = append(opts, tutor.WithWrongAnswerRewards())
	}

	return study.NewService(study.Config{
		Materials:     d.store.MaterialRepo(),
		Logs:          d.logs,
		Results:       d.store.QuizResultRepo(),
		Gateway:       tutor.NewGateway(provider, d.log),
		EngineOptions: opts,
		Logger:        d.log,
	})
}

// openSession opens deps and the session for the --material flag.
func openSession(cmd *cobra.Command) (*deps, *study.Session, error) {
	ref, _ := cmd.Flags().GetString("material")
	if ref == "" {
		return nil, nil, errors.New("--material is required")
	}
	d, err := openDeps(cmd)
	if err != nil {
		return nil, nil, err
	}
	sess, err := d.service(cmd.Context()).Open(cmd.Context(), resolveUser(cmd), ref)
	if err != nil {
		d.Close()
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("no material named %q (see `studybuddy material list`)", ref)
		}
		return nil, nil, err
	}
	return d, sess, nil
}

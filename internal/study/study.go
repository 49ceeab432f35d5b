// Package study binds the tutoring engine to storage: it resolves the
// material, loads the conversation, runs one engine operation and persists
// the turns that operation added.
package study

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/memory"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/tutor"
)

// MinMaterialChars is the shortest material accepted on upload.
const MinMaterialChars = 10

// ErrMaterialTooShort is returned when uploaded text is nearly empty.
var ErrMaterialTooShort = errors.New("material has too little text")

// Config holds the collaborators of a Service.
type Config struct {
	Materials store.MaterialRepo
	Logs      memory.LogStore
	Results   store.QuizResultRepo
	Gateway   *tutor.Gateway

	// EngineOptions are applied to every engine the service builds.
	EngineOptions []tutor.Option

	Logger *logger.Logger
}

// Service opens study sessions over stored materials.
type Service struct {
	materials  store.MaterialRepo
	logs       memory.LogStore
	results    store.QuizResultRepo
	gateway    *tutor.Gateway
	engineOpts []tutor.Option
	log        *logger.Logger
}

// NewService creates a Service.
func NewService(cfg Config) *Service {
	return &Service{
		materials:  cfg.Materials,
		logs:       cfg.Logs,
		results:    cfg.Results,
		gateway:    cfg.Gateway,
		engineOpts: cfg.EngineOptions,
		log:        logger.OrNop(cfg.Logger),
	}
}

// AddMaterial stores uploaded study text.
func (s *Service) AddMaterial(ctx context.Context, name, content string) (*store.Material, error) {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinMaterialChars {
		return nil, ErrMaterialTooShort
	}
	return s.materials.Create(ctx, name, content)
}

// Open starts a session for a user on the material identified by ref (an
// ID or a name).
func (s *Service) Open(ctx context.Context, userID, ref string) (*Session, error) {
	m, err := s.materials.Find(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find material %q: %w", ref, err)
	}
	return &Session{
		svc:      s,
		material: m,
		key:      memory.Key{UserID: userID, MaterialID: m.ID},
	}, nil
}

// Session is one user's conversation about one material.
type Session struct {
	svc      *Service
	material *store.Material
	key      memory.Key
}

// Material returns the session's material.
func (s *Session) Material() *store.Material { return s.material }

// Key returns the conversation key.
func (s *Session) Key() memory.Key { return s.key }

// GenerateQuiz runs the quiz pipeline.
func (s *Session) GenerateQuiz(ctx context.Context, count int, qtype string) (tutor.Result, error) {
	return s.run(ctx, func(e *tutor.Engine) tutor.Result {
		return e.GenerateQuiz(ctx, count, qtype)
	})
}

// GenerateFlashcards runs the flashcard pipeline.
func (s *Session) GenerateFlashcards(ctx context.Context, k int) (tutor.Result, error) {
	return s.run(ctx, func(e *tutor.Engine) tutor.Result {
		return e.GenerateFlashcards(ctx, k)
	})
}

// AskQuestion asks the student an open question.
func (s *Session) AskQuestion(ctx context.Context) (tutor.Result, error) {
	return s.run(ctx, func(e *tutor.Engine) tutor.Result {
		return e.AskQuestion(ctx)
	})
}

// Answer replies to a free-form message.
func (s *Session) Answer(ctx context.Context, message string) (tutor.Result, error) {
	return s.run(ctx, func(e *tutor.Engine) tutor.Result {
		return e.Answer(ctx, message)
	})
}

// CheckAnswer grades an answer to question, or to the pending question in
// the conversation when question is empty.
func (s *Session) CheckAnswer(ctx context.Context, question, answer string) (tutor.Result, error) {
	return s.run(ctx, func(e *tutor.Engine) tutor.Result {
		return e.CheckAnswer(ctx, question, answer)
	})
}

// History returns the full stored conversation.
func (s *Session) History(ctx context.Context) (memory.Log, error) {
	l, _, err := s.svc.logs.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return l, nil
}

// ClearHistory deletes the stored conversation.
func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.svc.logs.Clear(ctx, s.key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// RecordQuiz stores the outcome of a quiz the student took.
func (s *Session) RecordQuiz(ctx context.Context, qtype string, total, correct int) error {
	return s.svc.results.Record(ctx, store.QuizResultData{
		UserID:       s.key.UserID,
		MaterialID:   s.key.MaterialID,
		QuestionType: qtype,
		Total:        total,
		Correct:      correct,
	})
}

// run builds an engine from the stored log, runs op and appends what op
// added. The result is returned even when persisting fails.
func (s *Session) run(ctx context.Context, op func(*tutor.Engine) tutor.Result) (tutor.Result, error) {
	prior, _, err := s.svc.logs.Load(ctx, s.key)
	if err != nil {
		return tutor.Result{}, fmt.Errorf("load history: %w", err)
	}

	e := tutor.New(tutor.NewMaterial(s.material.Content), prior, s.svc.gateway, s.svc.engineOpts...)
	res := op(e)

	added := e.Log().Since(len(prior))
	if len(added) == 0 {
		return res, nil
	}
	if _, err := memory.Append(ctx, s.svc.logs, s.key, added...); err != nil {
		s.svc.log.Warn("history not saved", "user_id", s.key.UserID, "material", s.key.MaterialID, "error", err)
		return res, fmt.Errorf("save history: %w", err)
	}
	return res, nil
}

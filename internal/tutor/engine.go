// Package tutor is the conversational tutoring engine. An Engine is built
// fresh for every call from the study material and the prior conversation
// log, runs one operation, and hands back a Result plus the updated log for
// the caller to persist. Nothing here returns an error: provider failures
// become text at the gateway and every other failure maps to a Result kind.
package tutor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/memory"
	"github.com/abhisek/studybuddy/internal/prompt"
	"github.com/abhisek/studybuddy/internal/reward"
)

// Engine runs tutoring operations over one material and one conversation.
type Engine struct {
	material Material
	log      memory.Log
	gateway  *Gateway

	rng         *rand.Rand
	rewards     reward.Provider
	rewardWrong bool
	redirect    string
	window      int
	logger      *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source for focus hints and seeds.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithRewards sets the reward asset provider used after evaluations.
func WithRewards(p reward.Provider) Option {
	return func(e *Engine) { e.rewards = p }
}

// WithWrongAnswerRewards also looks up an encouraging asset for incorrect
// answers.
func WithWrongAnswerRewards() Option {
	return func(e *Engine) { e.rewardWrong = true }
}

// WithRedirect replaces the reply to quiz requests made in chat.
func WithRedirect(msg string) Option {
	return func(e *Engine) { e.redirect = msg }
}

// WithWindow sets how many recent turns go into each prompt.
func WithWindow(n int) Option {
	return func(e *Engine) { e.window = n }
}

// WithLogger sets the logger for reward lookups.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an engine for one invocation. log is not modified; Log
// returns the extended copy.
func New(material Material, log memory.Log, gateway *Gateway, opts ...Option) *Engine {
	e := &Engine{
		material: material,
		log:      log,
		gateway:  gateway,
		rewards:  reward.None{},
		redirect: DefaultRedirect,
		window:   memory.DefaultWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	e.logger = logger.OrNop(e.logger)
	return e
}

// Log returns the conversation including turns added by this engine.
func (e *Engine) Log() memory.Log { return e.log }

// AskQuestion asks the student one open question. The question stays in
// the log so a later CheckAnswer can grade against it.
func (e *Engine) AskQuestion(ctx context.Context) Result {
	c := e.call(ctx, prompt.IntentOpenQuestion, prompt.Input{
		User: prompt.OpenQuestionInstruction(),
	})
	return Result{Kind: KindOpenQuestion, Question: c.Message()}
}

// Answer replies to a free-form chat message. Quiz requests are redirected
// without a provider call.
func (e *Engine) Answer(ctx context.Context, message string) Result {
	if IsQuizRequest(message) {
		return Result{Kind: KindAnswer, Response: e.redirect}
	}
	c := e.call(ctx, prompt.IntentFreeAnswer, prompt.Input{
		Task: prompt.FreeAnswerTask(),
		User: message,
	})
	return Result{Kind: KindAnswer, Response: c.Message()}
}

// CheckAnswer grades a student's answer. question may be empty, in which
// case the pending question is taken from the conversation.
func (e *Engine) CheckAnswer(ctx context.Context, question, answer string) Result {
	c := e.call(ctx, prompt.IntentEvaluation, prompt.Input{
		User: prompt.EvaluationInstructionFor(question, answer),
	})
	text := c.Message()
	verdict := ClassifyVerdict(text)

	res := Result{
		Kind:    KindFeedback,
		Correct: verdict.Correct(),
		Verdict: verdict,
		Message: StripVerdictTags(text),
	}
	if !c.Failed() {
		res.Asset = e.lookupReward(ctx, verdict)
	}
	return res
}

// call composes the prompt, runs it through the gateway and records the
// exchange. Failed calls leave the log untouched so apologies never end up
// in later prompts.
func (e *Engine) call(ctx context.Context, intent prompt.Intent, in prompt.Input) Completion {
	ctx = llm.WithPurpose(ctx, string(intent))
	in.Preview = e.material.Preview()
	in.History = e.log.Window(e.window)

	c := e.gateway.complete(ctx, prompt.Compose(in))
	if !c.Failed() {
		e.log = e.log.
			WithTurn(memory.Student, in.User).
			WithTurn(memory.Assistant, c.Text)
	}
	return c
}

// lookupReward never fails the evaluation: errors and panics from the
// provider both yield no asset.
func (e *Engine) lookupReward(ctx context.Context, v Verdict) (asset *reward.Asset) {
	if e.rewards == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("reward lookup panicked", "panic", fmt.Sprint(r))
			asset = nil
		}
	}()
	category := reward.Correct
	if !v.Correct() {
		if !e.rewardWrong {
			return nil
		}
		category = reward.Wrong
	}
	asset, err := e.rewards.Lookup(ctx, category)
	if err != nil {
		e.logger.Debug("reward lookup failed", "category", string(category), "error", err)
		return nil
	}
	return asset
}

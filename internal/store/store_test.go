package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/studybuddy/internal/memory"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
				t.Fatalf("query pragma: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.pragma, got, tt.want)
			}
		})
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{llmEventsTable, materialsTable, conversationsTable, quizResultsTable} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m, err := s.MaterialRepo().Create(ctx, "bio", "cells")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.MaterialRepo().Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Content != "cells" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.1-8b-instant", Purpose: "quiz", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nquiz me", ResponseBody: "Q1: x"},
		{Provider: "groq", Model: "llama-3.1-8b-instant", Purpose: "ask", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "groq", Model: "llama-3.1-8b-instant", Purpose: "quiz", InputTokens: 20, OutputTokens: 0, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" || all[0].Success {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("expected newest first, got sequences %d, %d", all[0].Sequence, all[1].Sequence)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "ask"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "ask" {
		t.Fatalf("purpose filter = %+v", limited)
	}

	oldest := all[2]
	got, err := repo.GetLLMEvent(ctx, oldest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nquiz me" || got.ResponseBody != "Q1: x" {
		t.Fatalf("get = %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v is not recent", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %+v", byPurpose)
	}
	quiz := byPurpose[1]
	if quiz.Purpose != "quiz" || quiz.Calls != 2 || quiz.InputTokens != 120 || quiz.AvgLatencyMs != 300 {
		t.Errorf("quiz usage = %+v", quiz)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].OutputTokens != 55 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestMaterials(t *testing.T) {
	s := openTestStore(t)
	repo := s.MaterialRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, "biology", "Mitochondria are the powerhouse of the cell.")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected an ID")
	}

	got, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "biology" || got.Content != first.Content {
		t.Errorf("get = %+v", got)
	}

	byName, err := repo.Find(ctx, "biology")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if byName.ID != first.ID {
		t.Errorf("find by name = %s, want %s", byName.ID, first.ID)
	}

	if _, err := repo.Find(ctx, "chemistry"); !errors.Is(err, ErrNotFound) {
		t.Errorf("find missing err = %v, want ErrNotFound", err)
	}

	if _, err := repo.Create(ctx, "history", "Rome was not built in a day."); err != nil {
		t.Fatalf("create second: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len = %d", len(list))
	}
	for _, m := range list {
		if m.Name == "biology" && m.Chars != 44 {
			t.Errorf("chars = %d, want 44", m.Chars)
		}
	}
}

func TestConversationRepoOptimisticVersions(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConversationRepo()
	ctx := context.Background()
	key := memory.Key{UserID: "u1", MaterialID: "m1"}

	log, v, err := repo.Load(ctx, key)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(log) != 0 || v != 0 {
		t.Fatalf("empty load = %v @ %d", log, v)
	}

	first := memory.Log{}.WithTurn(memory.Student, "what is ATP?").WithTurn(memory.Assistant, "energy")
	if err := repo.Save(ctx, key, first, 0); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.Save(ctx, key, first, 0); !errors.Is(err, memory.ErrConflict) {
		t.Fatalf("duplicate insert err = %v, want ErrConflict", err)
	}

	log, v, err = repo.Load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != 1 || len(log) != 2 || log[0].Speaker != memory.Student {
		t.Fatalf("load = %+v @ %d", log, v)
	}

	second := log.WithTurn(memory.Student, "thanks")
	if err := repo.Save(ctx, key, second, 1); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := repo.Save(ctx, key, second, 1); !errors.Is(err, memory.ErrConflict) {
		t.Fatalf("stale update err = %v, want ErrConflict", err)
	}

	// Other keys are independent.
	other, v, err := repo.Load(ctx, memory.Key{UserID: "u1", MaterialID: "m2"})
	if err != nil || len(other) != 0 || v != 0 {
		t.Fatalf("other key = %v @ %d, %v", other, v, err)
	}

	if err := repo.Clear(ctx, key); err != nil {
		t.Fatalf("clear: %v", err)
	}
	log, v, err = repo.Load(ctx, key)
	if err != nil || len(log) != 0 || v != 3 {
		t.Fatalf("after clear = %v @ %d, %v; want empty @ 3", log, v, err)
	}

	// A writer that loaded version 2 before the clear must still lose once
	// the conversation grows again.
	fresh := memory.Log{}.WithTurn(memory.Student, "new topic")
	if err := repo.Save(ctx, key, fresh, 3); err != nil {
		t.Fatalf("save after clear: %v", err)
	}
	if err := repo.Save(ctx, key, second, 2); !errors.Is(err, memory.ErrConflict) {
		t.Fatalf("pre-clear writer err = %v, want ErrConflict", err)
	}
	log, v, err = repo.Load(ctx, key)
	if err != nil || v != 4 || len(log) != 1 || log[0].Text != "new topic" {
		t.Fatalf("after fresh save = %+v @ %d, %v", log, v, err)
	}

	// Clearing a conversation that never existed is a no-op.
	if err := repo.Clear(ctx, memory.Key{UserID: "u9", MaterialID: "m9"}); err != nil {
		t.Fatalf("clear unknown: %v", err)
	}
}

func TestConversationRepoWithAppend(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConversationRepo()
	ctx := context.Background()
	key := memory.Key{UserID: "u", MaterialID: "m"}

	if _, err := memory.Append(ctx, repo, key, memory.Turn{Speaker: memory.Student, Text: "a"}); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	got, err := memory.Append(ctx, repo, key, memory.Turn{Speaker: memory.Assistant, Text: "b"})
	if err != nil {
		t.Fatalf("append 2: %v", err)
	}
	if len(got) != 2 || got[1].Text != "b" {
		t.Fatalf("log = %+v", got)
	}
}

func TestConversationRepoRejectsCorruptRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		"INSERT INTO conversations (user_id, material_id, log, version, updated_at) VALUES (?, ?, ?, ?, ?)",
		"u", "m", `{"oops":true}`, 1, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, _, err = s.ConversationRepo().Load(ctx, memory.Key{UserID: "u", MaterialID: "m"})
	var invalid *memory.ErrInvalidLog
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidLog", err)
	}
}

func TestQuizResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizResultRepo()
	ctx := context.Background()

	empty, err := repo.Summary(ctx, "alice")
	if err != nil {
		t.Fatalf("empty summary: %v", err)
	}
	if empty.Quizzes != 0 || empty.Accuracy() != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}

	results := []QuizResultData{
		{UserID: "alice", MaterialID: "m1", QuestionType: "mixed", Total: 5, Correct: 4},
		{UserID: "alice", MaterialID: "m1", QuestionType: "true_false", Total: 10, Correct: 5},
		{UserID: "bob", MaterialID: "m1", QuestionType: "mixed", Total: 5, Correct: 5},
	}
	for i, r := range results {
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if err := repo.Record(ctx, QuizResultData{UserID: "alice", Total: 2, Correct: 3}); err == nil {
		t.Fatal("expected error for more correct than total")
	}

	sum, err := repo.Summary(ctx, "alice")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Quizzes != 2 || sum.Questions != 15 || sum.Correct != 9 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Accuracy() != 60 {
		t.Errorf("accuracy = %d, want 60", sum.Accuracy())
	}

	recent, err := repo.Recent(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].QuestionType != "true_false" || recent[0].Accuracy() != 50 {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[0].AttemptID == "" {
		t.Error("expected a generated attempt ID")
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STUDYBUDDY_DB", filepath.Join(dir, "explicit", "db.sqlite"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "explicit", "db.sqlite") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("STUDYBUDDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if p != filepath.Join(dir, "studybuddy", "studybuddy.db") {
		t.Errorf("path = %q", p)
	}
}

package quiz

import "github.com/abhisek/studybuddy/internal/tutor"

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Result tutor.Result
	Err    error
}

// quizEndMsg is sent to trigger the end-of-quiz flow.
type quizEndMsg struct{}

// quizRecordedMsg is sent once the result has been stored.
type quizRecordedMsg struct {
	Err error
}

package tutor

import "strings"

// DefaultRedirect points quiz requests made in chat at the quiz pipeline.
const DefaultRedirect = "For quizzes, click the **Generate Quiz** button above! 👆 It'll create a proper quiz with answer checking. In chat, I'm better at explaining concepts and answering your questions about the material! 📚"

// quizPhrases mark a chat message as a quiz request.
var quizPhrases = []string{
	"create quiz",
	"make quiz",
	"give me quiz",
	"mcq",
	"multiple choice",
	"generate quiz",
	"test me",
	"quiz me",
	"give me questions",
}

// IsQuizRequest reports whether a chat message asks for a quiz.
func IsQuizRequest(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, p := range quizPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

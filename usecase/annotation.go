package usecase

import (
	"fmt"
	"strings"

	"github.com/voicebook/server/domain/entities"
)

const (
	transcriptPrefix = "Text:"
	sentimentPrefix  = "Sentiment Analysis:"
)

// CombinedPrompt instructs the model to transcribe and classify in one
// call, with a fixed two-line output contract the parser scans for.
const CombinedPrompt = `
Please provide an exact transcript for the audio, followed by sentiment analysis.

Your response should follow the format:

Text: USERS SPEECH TRANSCRIPTION

Sentiment Analysis: positive|neutral|negative
`

// TranscribePrompt asks for the transcription alone, used to derive the
// question text in the ask-the-book flow.
const TranscribePrompt = `
Please provide an exact transcript for the audio.
Respond with the transcription only, with no labels or commentary.
`

// AnswerPrompt builds the context-augmented prompt that grounds an
// answer in the uploaded book.
func AnswerPrompt(bookText, question string) string {
	return fmt.Sprintf(`You are a helpful assistant answering questions about a book.
Use only the book text below to answer. If the book does not contain the
answer, say so.

Book text:
%s

Question: %s

Answer concisely.`, bookText, question)
}

// ParseAnnotation extracts the transcript and sentiment fields from the
// model's free-text response by scanning for fixed line prefixes. Lines
// matching no known prefix are ignored; a missing prefix leaves that
// field empty. There is no validation that the model followed the
// format.
func ParseAnnotation(raw string) entities.Annotation {
	var annotation entities.Annotation

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, transcriptPrefix):
			annotation.Transcript = strings.TrimSpace(strings.TrimPrefix(line, transcriptPrefix))
		case strings.HasPrefix(line, sentimentPrefix):
			annotation.Sentiment = strings.TrimSpace(strings.TrimPrefix(line, sentimentPrefix))
		}
	}

	return annotation
}

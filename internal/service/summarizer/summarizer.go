// Package summarizer drives one summarization exchange per request: create a
// conversation context, submit the document, drain the fragment stream into a
// single summary, discard the context.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"

	"pdfsummarizer/internal/models"
	"pdfsummarizer/internal/service/gateway"
	"pdfsummarizer/internal/session"
)

const (
	appName       = "pdf_summarizer"
	defaultUserID = "pdf_user"
)

const systemInstruction = `You are an expert document summarizer with deep analytical skills. Your task is to:

1. Carefully read and analyze the provided PDF document text
2. Identify the main themes, key points, and important details
3. Create a comprehensive yet concise summary that captures:
   - The document's primary purpose and main arguments
   - Key findings, data, or evidence presented
   - Important conclusions or recommendations
   - Any significant implications or takeaways

4. Structure your summary clearly with:
   - An opening statement about the document's topic
   - Well-organized paragraphs covering main points
   - A concluding statement if applicable

5. Keep the summary between 100-200 words depending on the document's length and complexity
6. Use clear, professional language that is accessible to a general audience
7. Maintain objectivity and accuracy - don't add information not present in the original text

Provide your summary directly without any preamble or meta-commentary.`

// ErrEmptySummary is returned when the gateway stream finished without
// producing any text.
var ErrEmptySummary = errors.New("gateway did not generate any response")

// ChatStreamer is the one narrow seam to the model gateway: submit messages
// under a created context, get fragments back.
type ChatStreamer interface {
	Stream(ctx context.Context, sess *session.Session, messages []*schema.Message) (*schema.StreamReader[*schema.Message], error)
}

// Service orchestrates the session-per-request pattern.
type Service struct {
	sessions *session.Store
	gateway  ChatStreamer
}

func NewService(store *session.Store, gw ChatStreamer) *Service {
	return &Service{
		sessions: store,
		gateway:  gw,
	}
}

// Run produces the summary for one extracted document. Either the full
// concatenation of all fragments is returned or an error; never a partial
// result.
func (s *Service) Run(ctx context.Context, doc *models.Document) (string, error) {
	if doc == nil || doc.Text == "" {
		return "", errors.New("document text is required")
	}

	// Context creation is a blocking prerequisite: Create returns only once
	// the session is registered, and Stream refuses anything unregistered.
	sess, err := s.sessions.Create(ctx, appName, defaultUserID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	defer s.sessions.Discard(sess)

	ctx = gateway.WithDocument(ctx, doc)
	streamReader, err := s.gateway.Stream(ctx, sess, buildMessages(doc.Text))
	if err != nil {
		return "", fmt.Errorf("generate summary stream: %w", err)
	}
	defer streamReader.Close()

	var sb strings.Builder
	for {
		chunk, err := streamReader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("receive summary fragment: %w", gateway.Classify(err))
		}
		sb.WriteString(chunk.Content)
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", ErrEmptySummary
	}
	return summary, nil
}

func buildMessages(text string) []*schema.Message {
	userPrompt := fmt.Sprintf("Please summarize the following PDF document:\n\n%s\n\nProvide a comprehensive summary following the guidelines in your instructions.", text)
	return []*schema.Message{
		{
			Role:    schema.System,
			Content: systemInstruction,
		},
		{
			Role:    schema.User,
			Content: userPrompt,
		},
	}
}

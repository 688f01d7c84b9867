// Package vision extracts timetable text from uploaded documents using an
// OpenAI-compatible vision model. The model is a black box: it receives the
// document inline plus an extraction prompt and returns raw text, ideally the
// JSON shape the draft parser accepts first.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// Supported document MIME types for extraction
var SupportedMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/webp",
	"image/gif",
	"application/pdf",
}

// Config holds the vision client configuration
type Config struct {
	// BaseURL is the OpenAI-compatible API endpoint
	BaseURL string
	// APIKey is the API key for the endpoint
	APIKey string
	// Model is the vision-capable model to use
	Model string
	// Timeout is the per-request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default vision configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.openai.com/v1",
		APIKey:  "",
		Model:   "gpt-4o-mini",
		Timeout: 60 * time.Second,
	}
}

// Client provides timetable extraction functionality
type Client struct {
	config *Config
	client *openai.Client
}

// NewClient creates a new vision client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// ExtractTimetable sends a timetable document to the vision model and returns
// the extracted text. The caller decides what to do with unparseable output;
// an empty completion is returned as "" without error.
func (c *Client) ExtractTimetable(ctx context.Context, data []byte, mimeType string, dayOrder []string) (string, error) {
	if !c.isSupported(mimeType) {
		return "", errors.Errorf("unsupported MIME type: %s", mimeType)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: ExtractionPrompt(dayOrder),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "vision completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ExtractionPrompt builds the timetable extraction prompt. The day list is
// injected so the prompt's column order and the draft parser's day order are
// the same positional contract.
func ExtractionPrompt(dayOrder []string) string {
	days := strings.Join(dayOrder, ", ")

	return fmt.Sprintf(`You are a timetable extraction assistant. Analyze this timetable document carefully:

1. The timetable has a HEADER ROW with days of the week (%s)
2. Each ROW represents a time slot (e.g., "0930 to 1030")
3. Each COLUMN under a day contains classes for that specific day
4. Pay close attention to which COLUMN each class appears in - the column position determines the day

Extract and return a JSON object with a "schedule" array. Each entry should have:
- day: The EXACT day from the column header (%s)
- start: Start time in 24-hour format (e.g., "0930")
- end: End time in 24-hour format (e.g., "1030")
- course: Course code (e.g., "SC404S", "HW2208")
- location: Room/location (e.g., "ws119-19", "ONLINE")
- type: Class type (e.g., "LEC", "TUT", "SEM", "LAB")
- notes: Any additional information, including week ranges like "Wk 1-4, 6"

CRITICAL: Match each class to the correct day by carefully checking which COLUMN it appears in.
Only include time slots that have scheduled classes. Skip empty cells.

Return ONLY valid JSON, no explanation or markdown.`, days, days)
}

// IsSupported checks if a MIME type is supported for extraction
func (c *Client) IsSupported(mimeType string) bool {
	return c.isSupported(mimeType)
}

func (c *Client) isSupported(mimeType string) bool {
	for _, supported := range SupportedMimeTypes {
		if strings.EqualFold(mimeType, supported) {
			return true
		}
	}
	return false
}

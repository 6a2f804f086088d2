package structurer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

var (
	// ErrUnavailable is returned on transport, auth or rate-limit failure
	// from the inference service.
	ErrUnavailable = errors.New("inference service unavailable")

	// ErrEmptyResponse is returned when the service answers with no usable
	// text.
	ErrEmptyResponse = errors.New("empty response from inference service")
)

// Client converts free-form resume text into the target JSON schema by
// calling the OpenAI chat completions API. It does not validate the reply's
// shape; that is the normalizer's job.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a structuring client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		client: &client,
		model:  model,
	}
}

const systemPrompt = `You are a professional resume parser. Extract key information from the resume text and return ONLY valid JSON.`

const schemaPrompt = `Extract all information from the following resume text in this exact JSON structure:

{
  "personal_info": {
    "name": string,
    "email": string,
    "phone": string,
    "linkedin_url": string,
    "github_url": string,
    "address": string
  },
  "summary": string (professional summary or objective),
  "skills": string[] (technical and soft skills),
  "work_experience": [{
    "company": string,
    "job_title": string,
    "start_date": string,
    "end_date": string (or "Present"),
    "responsibilities": string[]
  }],
  "projects": [{
    "name": string,
    "description": string,
    "technologies": string[]
  }],
  "education": [{
    "institution": string,
    "degree": string,
    "start_date": string,
    "end_date": string
  }]
}

IMPORTANT:
- Omit fields that are not present in the text
- Preserve the order in which entries appear
- Return ONLY the JSON, no explanatory text

Resume Text:
`

// Structure sends the extracted text to the inference service once and
// returns the raw reply, presumed to be JSON. No internal retries; transient
// failures propagate to the caller.
func (c *Client) Structure(ctx context.Context, text string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(schemaPrompt + text),
		},
		Model: openai.ChatModel(c.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := StripCodeFence(completion.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

// StripCodeFence removes a Markdown code-fence wrapper around a JSON block,
// a known artifact of LLM output. Anything else passes through untouched.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

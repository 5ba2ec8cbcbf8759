package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/domain"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(key, model, baseURL string, opts ...option.RequestOption) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	all := []option.RequestOption{option.WithAPIKey(key), option.WithMaxRetries(2)}
	if baseURL != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}
	all = append(all, opts...)
	return &OpenAI{client: openai.NewClient(all...), model: model}
}

func (o *OpenAI) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			observability.ObserveExternal("openai", "chat", apiErr.StatusCode, time.Since(start))
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
		} else {
			observability.ObserveExternal("openai", "chat", 0, time.Since(start))
		}
		return "", fmt.Errorf("openai: %w", err)
	}
	observability.ObserveExternal("openai", "chat", http.StatusOK, time.Since(start))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-diet/internal/config"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
)

// Client talks to the Gemini generateContent REST endpoint. It reads meals out
// of diet plans and renders meal photos.
type Client struct {
	httpClient *resty.Client
	textModel  string
	imageModel string
	log        *zap.Logger
}

func NewClient(cfg config.AIConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")+"/v1beta").
		SetHeader("x-goog-api-key", cfg.GeminiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{
		httpClient: restyClient,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		log:        logger.Named(log, "ai.gemini"),
	}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema  `json:"responseSchema,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// parts returns the parts of the first candidate.
func (r *generateResponse) parts() []part {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

func (r *generateResponse) text() string {
	var sb strings.Builder
	for _, p := range r.parts() {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (c *Client) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	var respBody generateResponse
	var errBody apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("model", model).
		SetBody(body).
		SetResult(&respBody).
		SetError(&errBody).
		Post("/models/{model}:generateContent")

	if err != nil {
		return nil, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		if errBody.Error.Message != "" {
			return nil, fmt.Errorf("gemini api error (%d %s): %s", resp.StatusCode(), errBody.Error.Status, errBody.Error.Message)
		}
		return nil, fmt.Errorf("gemini api error (%d): %s", resp.StatusCode(), resp.String())
	}
	if respBody.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini blocked the prompt: %s", respBody.PromptFeedback.BlockReason)
	}
	if len(respBody.parts()) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	c.log.Debug("gemini call finished",
		zap.String("model", model),
		zap.Duration("elapsed", resp.Time()),
	)

	return &respBody, nil
}

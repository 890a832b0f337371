package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-diet/internal/config"
	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

type capturedRequest struct {
	Path   string
	APIKey string
	Body   generateRequest
}

func newTestClient(t *testing.T, status int, response string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.APIKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.AIConfig{
		GeminiKey:  "test-key",
		BaseURL:    srv.URL + "/",
		TextModel:  "text-model",
		ImageModel: "image-model",
		Timeout:    5 * time.Second,
	}, nil)
	return client, captured
}

func textResponse(t *testing.T, text string) string {
	t.Helper()
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(raw)
}

func TestClient_Extract(t *testing.T) {
	t.Run("Success: Parses Meals And Coerces Categories", func(t *testing.T) {
		payload := "```json\n" + `[
			{"mealName": " Oat Porridge ", "weightGrams": 250, "calories": 320, "protein": 12, "carbs": 54, "fat": 6, "category": "Breakfast"},
			{"mealName": "Dates", "weightGrams": "40", "calories": "110", "protein": 1, "carbs": 30, "fat": 0, "category": "Dessert"}
		]` + "\n```"
		client, captured := newTestClient(t, http.StatusOK, textResponse(t, payload))

		meals, err := client.Extract(context.Background(), []byte("fake-jpeg"), "image/jpeg")
		require.NoError(t, err)
		require.Len(t, meals, 2)

		assert.Equal(t, "Oat Porridge", meals[0].MealName)
		assert.Equal(t, 250.0, meals[0].WeightGrams)
		assert.Equal(t, domain.CategoryBreakfast, meals[0].Category)

		assert.Equal(t, 40.0, meals[1].WeightGrams)
		assert.Equal(t, 110.0, meals[1].Calories)
		assert.Equal(t, domain.CategorySnacks, meals[1].Category)

		assert.Equal(t, "/v1beta/models/text-model:generateContent", captured.Path)
		assert.Equal(t, "test-key", captured.APIKey)
		require.NotNil(t, captured.Body.GenerationConfig)
		assert.Equal(t, "application/json", captured.Body.GenerationConfig.ResponseMimeType)
		require.Len(t, captured.Body.Contents, 1)
		parts := captured.Body.Contents[0].Parts
		require.Len(t, parts, 2)
		require.NotNil(t, parts[0].InlineData)
		assert.Equal(t, "image/jpeg", parts[0].InlineData.MimeType)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("fake-jpeg")), parts[0].InlineData.Data)
		assert.Equal(t, extractPrompt, parts[1].Text)
	})

	t.Run("Fail: API Error Is An Extraction Failure", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusTooManyRequests,
			`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`)

		meals, err := client.Extract(context.Background(), []byte("x"), "image/png")

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Nil(t, meals)
	})

	t.Run("Fail: Malformed JSON Is An Extraction Failure", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, textResponse(t, "here are your meals: none"))

		meals, err := client.Extract(context.Background(), []byte("x"), "image/png")

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		assert.Nil(t, meals)
	})

	t.Run("Fail: No Candidates", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, `{"candidates": []}`)

		_, err := client.Extract(context.Background(), []byte("x"), "image/png")

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})

	t.Run("Edge: Unreadable PDF Still Sends The Base Prompt", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, textResponse(t, "[]"))

		meals, err := client.Extract(context.Background(), []byte("%PDF-garbage"), "application/pdf")
		require.NoError(t, err)
		assert.Empty(t, meals)

		parts := captured.Body.Contents[0].Parts
		assert.Equal(t, extractPrompt, parts[len(parts)-1].Text)
	})
}

func TestClient_Generate(t *testing.T) {
	t.Run("Success: Decodes Inline Image", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
		client, captured := newTestClient(t, http.StatusOK, `{"candidates": [{"content": {"parts": [
			{"text": "Here you go"},
			{"inlineData": {"mimeType": "image/png", "data": "`+encoded+`"}}
		]}}]}`)

		img, err := client.Generate(context.Background(), "Chicken Bowl")
		require.NoError(t, err)

		assert.Equal(t, "image/png", img.MimeType)
		assert.Equal(t, []byte("png-bytes"), img.Data)
		assert.Equal(t, "/v1beta/models/image-model:generateContent", captured.Path)
		assert.Equal(t, []string{"IMAGE"}, captured.Body.GenerationConfig.ResponseModalities)
		assert.Contains(t, captured.Body.Contents[0].Parts[0].Text, "Chicken Bowl")
	})

	t.Run("Fail: Text Only Response", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, textResponse(t, "I cannot draw that"))

		_, err := client.Generate(context.Background(), "Chicken Bowl")

		assert.ErrorIs(t, err, errNoImage)
	})

	t.Run("Fail: Blocked Prompt", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK,
			`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`)

		_, err := client.Generate(context.Background(), "Chicken Bowl")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SAFETY")
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[]", stripCodeFence("```json\n[]\n```"))
	assert.Equal(t, "[1]", stripCodeFence("```\n[1]\n```"))
	assert.Equal(t, "[2]", stripCodeFence("  [2]  "))
}

func TestPDFTextHint_Garbage(t *testing.T) {
	assert.Empty(t, pdfTextHint([]byte("not a pdf at all")))
	assert.Empty(t, pdfTextHint(nil))
}

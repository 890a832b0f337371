package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

const extractPrompt = "You are an expert nutrition assistant. Analyze the attached image or PDF of a diet plan, " +
	"which could be in English or Arabic. Extract every meal listed. For each meal, identify its name " +
	"(translating to English if necessary), category (Breakfast, Lunch, Dinner, or Snacks), total calories, " +
	"protein (g), carbs (g), and fat (g). If a value is missing, estimate it based on the meal's components. " +
	"Provide the output as a JSON array of objects."

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

var mealListSchema = &schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"mealName":    {Type: "STRING", Description: "The English name of the meal. If the meal name is in Arabic or another language in the source, translate it to English."},
			"weightGrams": {Type: "NUMBER", Description: "The estimated weight of the meal in grams. Provide a reasonable estimate if not specified."},
			"calories":    {Type: "NUMBER", Description: "The estimated total calories for the meal."},
			"protein":     {Type: "NUMBER", Description: "The estimated total protein in grams for the meal."},
			"carbs":       {Type: "NUMBER", Description: "The estimated total carbohydrates in grams for the meal."},
			"fat":         {Type: "NUMBER", Description: "The estimated total fat in grams for the meal."},
			"category":    {Type: "STRING", Description: "Categorize as 'Breakfast', 'Lunch', 'Dinner', or 'Snacks', in English."},
		},
		Required: []string{"mealName", "weightGrams", "calories", "protein", "carbs", "fat", "category"},
	},
}

// extractedItem accepts numbers sent as strings.
type extractedItem struct {
	MealName    string        `json:"mealName"`
	WeightGrams domain.Amount `json:"weightGrams"`
	Calories    domain.Amount `json:"calories"`
	Protein     domain.Amount `json:"protein"`
	Carbs       domain.Amount `json:"carbs"`
	Fat         domain.Amount `json:"fat"`
	Category    string        `json:"category"`
}

// Extract sends the file to the text model and returns every meal it lists.
// All failures wrap domain.ErrExtractionFailed; nothing partial is returned.
func (c *Client) Extract(ctx context.Context, file []byte, mimeType string) ([]domain.ExtractedMeal, error) {
	parts := []part{{
		InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(file),
		},
	}}

	prompt := extractPrompt
	if mimeType == "application/pdf" {
		if hint := pdfTextHint(file); hint != "" {
			prompt += "\n\nThe PDF text layer reads:\n" + hint
		} else {
			c.log.Debug("pdf has no readable text layer")
		}
	}
	parts = append(parts, part{Text: prompt})

	resp, err := c.generate(ctx, c.textModel, generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   mealListSchema,
		},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	meals, err := parseMeals(resp.text())
	if err != nil {
		c.log.Warn("unreadable extraction response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	c.log.Info("meals extracted", zap.Int("count", len(meals)), zap.String("mime_type", mimeType))
	return meals, nil
}

func parseMeals(raw string) ([]domain.ExtractedMeal, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, errors.New("empty extraction response")
	}

	var items []extractedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction response: %w", err)
	}

	meals := make([]domain.ExtractedMeal, 0, len(items))
	for _, it := range items {
		meals = append(meals, domain.ExtractedMeal{
			MealName:    strings.TrimSpace(it.MealName),
			WeightGrams: it.WeightGrams.Float(),
			Calories:    it.Calories.Float(),
			Protein:     it.Protein.Float(),
			Carbs:       it.Carbs.Float(),
			Fat:         it.Fat.Float(),
			Category:    domain.ParseCategory(it.Category),
		})
	}
	return meals, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

var errNoImage = errors.New("no image generated")

// Generate renders a food photo of mealName with the image model.
func (c *Client) Generate(ctx context.Context, mealName string) (domain.Image, error) {
	resp, err := c.generate(ctx, c.imageModel, generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: fmt.Sprintf("A delicious, high-quality photo of %s, realistic food photography", mealName)}},
		}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	})
	if err != nil {
		return domain.Image{}, err
	}

	for _, p := range resp.parts() {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return domain.Image{}, fmt.Errorf("failed to decode image data: %w", err)
		}
		return domain.Image{MimeType: p.InlineData.MimeType, Data: data}, nil
	}

	return domain.Image{}, errNoImage
}

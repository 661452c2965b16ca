package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
	"github.com/theimaginaryfoundation/numenera-stats/stats"
	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
	"github.com/theimaginaryfoundation/numenera-stats/stats/provider"
)

const maxReviewTextChars = 2000

type openAIVariantReviewer struct {
	client *openai.Client
	model  string
}

type variantReviewRequest struct {
	EntryID        string   `json:"entry_id"`
	DefaultText    string   `json:"default_text"`
	FemaleText     string   `json:"female_text"`
	DifferingWords []string `json:"differing_words"`
}

var verdictSchema = provider.GenerateSchema[stats.VariantVerdict]()

func (r openAIVariantReviewer) ReviewVariant(ctx context.Context, diff stats.GenderDiff) (stats.VariantVerdict, error) {
	if r.client == nil {
		return stats.VariantVerdict{}, errors.New("openAIVariantReviewer: client is nil")
	}
	if r.model == "" {
		return stats.VariantVerdict{}, errors.New("openAIVariantReviewer: model is empty")
	}

	payload, err := buildVariantReviewPayload(diff)
	if err != nil {
		return stats.VariantVerdict{}, err
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "VariantVerdict",
			Schema:      verdictSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Gendered variant verdict JSON"),
			Type:        "json_schema",
		},
	}

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(string(payload), responses.EasyInputMessageRoleUser),
	}
	params := responses.ResponseNewParams{
		Model:           r.model,
		MaxOutputTokens: openai.Int(300),
		Instructions:    openai.String(variantReviewPrompt),
		ServiceTier:     responses.ResponseNewParamsServiceTierFlex,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := provider.CallWithRetry(ctx, r.client, params)
	if err != nil {
		return stats.VariantVerdict{}, err
	}

	var out stats.VariantVerdict
	if err := fileutils.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return stats.VariantVerdict{}, fmt.Errorf("ReviewVariant: %w", err)
	}
	return out, nil
}

func buildVariantReviewPayload(diff stats.GenderDiff) ([]byte, error) {
	req := variantReviewRequest{
		EntryID:        diff.EntryID,
		DefaultText:    fileutils.Truncate(fileutils.SanitizeNewlines(diff.DefaultText), maxReviewTextChars),
		FemaleText:     fileutils.Truncate(fileutils.SanitizeNewlines(diff.FemaleText), maxReviewTextChars),
		DifferingWords: diff.Words,
	}
	if req.DifferingWords == nil {
		req.DifferingWords = []string{}
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("buildVariantReviewPayload: marshal: %w", err)
	}
	return b, nil
}

// Package parsing turns job posting text into structured requirements using an LLM.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Extractor extracts requirements from posting text with an injected LLM client
type Extractor struct {
	Client llm.Client
	Now    func() time.Time
}

// NewExtractor creates an Extractor
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{Client: client, Now: time.Now}
}

// extractedRequirements is the JSON shape the model is asked to return
type extractedRequirements struct {
	Company              *string  `json:"company"`
	Role                 *string  `json:"role"`
	KeyRequirements      []string `json:"key_requirements"`
	TechnicalSkills      []string `json:"technical_skills"`
	SoftSkills           []string `json:"soft_skills"`
	KeywordsForATS       []string `json:"keywords_for_ats"`
	MainResponsibilities []string `json:"main_responsibilities"`
	NiceToHave           []string `json:"nice_to_have"`
}

// Extract asks the model for the requirements of a posting and validates the answer.
// The returned record always carries the full posting text as its raw description.
func (e *Extractor) Extract(ctx context.Context, postingText, sourceURL string) (*types.Requirements, error) {
	if strings.TrimSpace(postingText) == "" {
		return nil, &ValidationError{Field: "raw_description", Message: "posting text is empty"}
	}
	if e.Client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}

	prompt, err := prompts.Render(prompts.RequirementsFile, "extract-requirements", map[string]string{
		"JobText": postingText,
	})
	if err != nil {
		return nil, err
	}

	responseText, err := e.Client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.RequirementsFile, prompts.SystemKey),
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: llm.TemperatureParsing,
		JSON:        true,
	})
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	req, err := parseJSONResponse(llm.ExtractJSON(responseText))
	if err != nil {
		return nil, err
	}

	req.RawDescription = postingText
	req.SourceURL = strings.TrimSpace(sourceURL)
	req.ParsedAt = e.now()

	if err := postProcessRequirements(req); err != nil {
		return nil, err
	}
	return req, nil
}

// parseJSONResponse parses the model's JSON into a Requirements record
func parseJSONResponse(jsonText string) (*types.Requirements, error) {
	if err := schemas.ValidateJSONBytes(schemas.Requirements, []byte(jsonText)); err != nil {
		return nil, &ParseError{
			Message: "LLM response is not a valid requirements object",
			Cause:   err,
		}
	}

	var wire extractedRequirements
	if err := json.Unmarshal([]byte(jsonText), &wire); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	req := &types.Requirements{
		KeyRequirements:      wire.KeyRequirements,
		TechnicalSkills:      wire.TechnicalSkills,
		SoftSkills:           wire.SoftSkills,
		KeywordsForATS:       wire.KeywordsForATS,
		MainResponsibilities: wire.MainResponsibilities,
		NiceToHave:           wire.NiceToHave,
	}
	if wire.Company != nil {
		req.Company = *wire.Company
	}
	if wire.Role != nil {
		req.Role = *wire.Role
	}
	return req, nil
}

// postProcessRequirements normalizes lists and enforces the minimum-data gate
func postProcessRequirements(req *types.Requirements) error {
	normalizeRequirements(req)

	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{
				Field:   verrs[0].Field(),
				Message: "required field is missing from the extracted requirements",
			}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func (e *Extractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

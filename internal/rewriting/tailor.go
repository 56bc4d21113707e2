// Package rewriting tailors a base profile to a job's requirements using an LLM.
package rewriting

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/validation"
)

// Tailor rewrites profiles with an injected LLM client
type Tailor struct {
	Client llm.Client
	Logger *zap.Logger

	// ForbiddenPhrases are reported as warnings when they appear in the tailored text
	ForbiddenPhrases []string
}

// NewTailor creates a Tailor
func NewTailor(client llm.Client, logger *zap.Logger) *Tailor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tailor{
		Client:           client,
		Logger:           logger,
		ForbiddenPhrases: validation.DefaultForbiddenPhrases,
	}
}

// TailorProfile returns a new profile rewritten toward req.
// The original is never modified, and a reply that cannot be decoded is an error:
// the untailored profile is never returned in its place.
func (t *Tailor) TailorProfile(ctx context.Context, original *types.Profile, req *types.Requirements) (*types.Profile, error) {
	if original == nil {
		return nil, errors.New("original profile is required")
	}
	if req == nil {
		return nil, errors.New("requirements are required")
	}
	if t.Client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}

	prompt, err := buildTailoringPrompt(original, req)
	if err != nil {
		return nil, err
	}

	responseText, err := t.Client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.TailoringFile, prompts.SystemKey),
		Prompt:      prompt,
		Tier:        llm.TierAdvanced,
		Temperature: llm.TemperatureTailoring,
	})
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate tailored profile",
			Cause:   err,
		}
	}

	tailored, err := parseProfileResponse(responseText)
	if err != nil {
		return nil, err
	}

	t.logChanges(original, tailored, req)
	return tailored, nil
}

// buildTailoringPrompt serializes the profile to YAML and fills the template
func buildTailoringPrompt(original *types.Profile, req *types.Requirements) (string, error) {
	profileYAML, err := profile.Encode(original)
	if err != nil {
		return "", err
	}

	return prompts.Render(prompts.TailoringFile, "tailor-profile", map[string]string{
		"Company":          req.Company,
		"Role":             req.Role,
		"KeyRequirements":  strings.Join(req.KeyRequirements, ", "),
		"TechnicalSkills":  strings.Join(req.TechnicalSkills, ", "),
		"SoftSkills":       strings.Join(req.SoftSkills, ", "),
		"Keywords":         strings.Join(req.KeywordsForATS, ", "),
		"Responsibilities": strings.Join(req.MainResponsibilities, ", "),
		"JobDescription":   req.RawDescription,
		"Profile":          string(profileYAML),
	})
}

// parseProfileResponse strips code fences and decodes the YAML profile
func parseProfileResponse(responseText string) (*types.Profile, error) {
	body, _ := llm.StripCodeFences(responseText, "yaml")
	if strings.TrimSpace(body) == "" {
		return nil, &ParseError{Message: "LLM returned an empty profile"}
	}

	tailored, err := profile.Decode([]byte(body))
	if err != nil {
		return nil, &ParseError{
			Message: "failed to parse tailored profile YAML",
			Cause:   err,
		}
	}
	return tailored, nil
}

func (t *Tailor) logChanges(original, tailored *types.Profile, req *types.Requirements) {
	changes := profile.Diff(original, tailored)
	coverage := KeywordCoverage(tailored, req.AllKeywords())

	t.Logger.Debug("profile tailored",
		zap.Bool("summary_changed", changes.SummaryChanged),
		zap.Bool("experience_reordered", changes.ExperienceReorder),
		zap.Int("positions_changed", len(changes.ChangedPositions)),
		zap.Int("keywords_found", len(coverage.Found)),
		zap.Strings("keywords_missing", coverage.Missing),
	)
	if changes.HasInventedContent() {
		t.Logger.Warn("tailored profile contains content not present in the original",
			zap.Strings("added_skills", changes.AddedSkills),
			zap.Strings("added_positions", changes.AddedPositions),
		)
	}

	violations := validation.CheckForbiddenPhrases(tailored, t.ForbiddenPhrases)
	if len(violations) > 0 {
		locations := make([]string, 0, len(violations))
		for _, v := range violations {
			locations = append(locations, v.Location)
		}
		t.Logger.Warn("tailored profile contains forbidden phrases",
			zap.Strings("phrases", validation.Phrases(violations)),
			zap.Strings("locations", locations),
		)
	}
}

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/ai"
	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
	"github.com/kindredlabs/matchcore/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Extractor asks Gemini to score a free-text answer against a set of
// dimensions and parses the untrusted response.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt_reflective.md
var reflectiveTemplate string

//go:embed prompt_scenario.md
var scenarioTemplate string

const defaultMaxLogLength = 200

// jsonArray grabs the first JSON array embedded in surrounding prose.
var jsonArray = regexp.MustCompile(`(?s)\[.*\]`)

func NewExtractor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ExtractScores implements ai.Extractor. The returned assessments carry raw
// provider values; clamping and per-dimension alignment happen upstream.
func (e *Extractor) ExtractScores(ctx context.Context, req *ai.ExtractionRequest) ([]ai.DimensionAssessment, error) {
	if req == nil {
		return nil, fmt.Errorf("extraction request is required")
	}
	if len(req.Dimensions) == 0 {
		return nil, fmt.Errorf("at least one dimension is required")
	}

	prompt := buildPrompt(req)

	e.logger.Debug("gemini extraction request",
		zap.String("model", e.generator.Model()),
		zap.String("question_type", string(req.QuestionType)),
		zap.Int("dimensions", len(req.Dimensions)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseAssessments(raw)
}

func buildPrompt(req *ai.ExtractionRequest) string {
	template := reflectiveTemplate
	if req.QuestionType == profile.QuestionScenario {
		template = scenarioTemplate
	}

	prompt := strings.ReplaceAll(template, "{{QUESTION}}", req.Question)
	prompt = strings.ReplaceAll(prompt, "{{ANSWER}}", req.Answer)
	prompt = strings.ReplaceAll(prompt, "{{DIMENSIONS}}", describeDimensions(req.Dimensions))
	return prompt
}

func describeDimensions(defs []dimension.Definition) string {
	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		switch {
		case def.Spectrum != "":
			lines = append(lines, fmt.Sprintf("- %s: %s", def.Key, def.Spectrum))
		case len(def.Options) > 0:
			lines = append(lines, fmt.Sprintf("- %s: Options: %s", def.Key, strings.Join(def.Options, ", ")))
		default:
			lines = append(lines, fmt.Sprintf("- %s", def.Key))
		}
	}
	return strings.Join(lines, "\n")
}

// parseAssessments extracts the JSON array from the raw model output and
// decodes it with weak typing, since providers routinely return numbers as
// strings or floats.
func parseAssessments(raw string) ([]ai.DimensionAssessment, error) {
	cleaned := stripFences(raw)

	match := jsonArray.FindString(cleaned)
	if match == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	assessments := make([]ai.DimensionAssessment, 0, len(items))
	for i, item := range items {
		var assessment ai.DimensionAssessment
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &assessment,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("build assessment decoder: %w", err)
		}
		if err := decoder.Decode(item); err != nil {
			return nil, fmt.Errorf("decode assessment %d: %w", i, err)
		}
		if strings.TrimSpace(assessment.Dimension) == "" {
			return nil, fmt.Errorf("assessment %d has no dimension", i)
		}
		assessments = append(assessments, assessment)
	}

	if len(assessments) == 0 {
		return nil, fmt.Errorf("extraction response contained no assessments")
	}

	return assessments, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

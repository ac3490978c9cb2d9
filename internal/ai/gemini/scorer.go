package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/propertymind/mietermatch/internal/logger"
	"github.com/propertymind/mietermatch/internal/market"
	"github.com/propertymind/mietermatch/internal/matching"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxLogLength = 200

	fallbackReasoning   = "manual review required"
	fallbackSuitability = "unknown"
)

// Fallback is the neutral assessment substituted when the completion call
// fails in any way. A failing pair keeps its shortlist slot for manual
// review instead of aborting the round.
var Fallback = matching.Assessment{
	Score:             50,
	Reasoning:         fallbackReasoning,
	IncomeSuitability: fallbackSuitability,
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer implements matching.Scorer with one structured completion per
// pair. Results are not deterministic. Score never returns an error: any
// failure degrades to Fallback.
type Scorer struct {
	generator contentGenerator
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, timeout time.Duration, maxLogLength int, log *zap.Logger) *Scorer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{
		generator: generator,
		timeout:   timeout,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, property *market.Property, tenant *market.TenantProfile) (matching.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildPrompt(property, tenant)

	s.logger.Debug("gemini scoring request",
		zap.String("tenant_id", tenant.ID),
		zap.String("property_id", property.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("gemini scoring failed, using fallback",
			zap.String("tenant_id", tenant.ID),
			zap.Error(err),
		)
		return Fallback, nil
	}

	s.logger.Debug("gemini scoring response",
		zap.String("tenant_id", tenant.ID),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		s.logger.Warn("gemini response unusable, using fallback",
			zap.String("tenant_id", tenant.ID),
			zap.Error(err),
		)
		return Fallback, nil
	}

	return assessment, nil
}

func buildPrompt(property *market.Property, tenant *market.TenantProfile) string {
	listing := fmt.Sprintf("%s, warm rent: %.0f EUR, rooms: %.1f, zip code: %s",
		property.PropertyTitle, property.RentWarm, property.Rooms, property.ZipCode)
	prospect := fmt.Sprintf("income: %.0f EUR (%s), details: %s, looking for: %.1f rooms in %s",
		tenant.HouseholdIncome, tenant.IncomeType, tenant.IncomeDetails, tenant.MinRooms, tenant.DesiredLocation)

	prompt := strings.ReplaceAll(promptTemplate, "{{PROPERTY}}", listing)
	return strings.ReplaceAll(prompt, "{{TENANT}}", prospect)
}

// parseResponse decodes a completion into an assessment. All three schema
// fields must be present and the score numeric; the score is rounded and
// clamped to [0,100].
func parseResponse(raw string) (matching.Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return matching.Assessment{}, fmt.Errorf("parse gemini response: %w", err)
	}

	for _, field := range []string{"score", "reasoning", "incomeSuitability"} {
		if _, ok := data[field]; !ok {
			return matching.Assessment{}, fmt.Errorf("gemini response missing field %q", field)
		}
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		return matching.Assessment{}, fmt.Errorf("gemini response score is not numeric: %v", data["score"])
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}

	return matching.Assessment{
		Score:             rounded,
		Reasoning:         coerceString(data["reasoning"]),
		IncomeSuitability: coerceString(data["incomeSuitability"]),
	}, nil
}

// extractJSON strips markdown code fences some models wrap around JSON even
// when a schema is requested.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/go-match-engine/services"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects validation failures for a request
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// parseRecommendationOptions validates the limit and min_score query
// parameters. A zero limit or absent min_score means the configured
// defaults apply downstream; caps are also enforced downstream.
func parseRecommendationOptions(c *gin.Context) (services.RecommendationOptions, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	opts := services.RecommendationOptions{}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			result.addError("limit", fmt.Sprintf("limit must be a non-negative integer, got %q", raw))
		} else {
			opts.Limit = limit
		}
	}

	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil || minScore < 0 || minScore > 1 {
			result.addError("min_score", fmt.Sprintf("min_score must be a number in [0.0, 1.0], got %q", raw))
		} else {
			opts.MinScore = &minScore
		}
	}

	return opts, result
}

package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxUsernameLength = 20
	maxQuestionLength = 280
	maxChoiceLength   = 140
	maxCategoryLength = 32
	minChoices        = 2
	maxChoices        = 6
	maxQuestionPoints = 100
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			_, err := validateUsername(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("qtext", func(fl validator.FieldLevel) bool {
			_, err := validateQuestionText(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
			_, err := validateChoice(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, err := validateCategory(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			_, err := validateDifficulty(fl.Field().String())
			return err == nil
		})
	})
}

func validateUsername(name string) (string, error) {
	return validateText("username", name, maxUsernameLength)
}

func validateQuestionText(text string) (string, error) {
	return validateText("question text", text, maxQuestionLength)
}

func validateChoice(text string) (string, error) {
	return validateText("choice", text, maxChoiceLength)
}

// validateChoices normalizes every choice and rejects duplicates after
// normalization, so "Paris " and "paris" cannot coexist.
func validateChoices(choices []string) ([]string, error) {
	if len(choices) < minChoices || len(choices) > maxChoices {
		return nil, fmt.Errorf("between %d and %d choices are required", minChoices, maxChoices)
	}
	cleaned := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		value, err := validateChoice(choice)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(value)
		if _, dup := seen[key]; dup {
			return nil, errors.New("choices must be distinct")
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, value)
	}
	return cleaned, nil
}

func validateCategory(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxCategoryLength {
		return "", fmt.Errorf("category must be %d characters or fewer", maxCategoryLength)
	}
	for _, r := range trimmed {
		if r > 127 {
			return "", errors.New("category contains unsupported characters")
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' || r == '_' {
			continue
		}
		return "", errors.New("category contains unsupported characters")
	}
	return trimmed, nil
}

func validateDifficulty(value string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return difficultyMedium, nil
	}
	switch trimmed {
	case difficultyEasy, difficultyMedium, difficultyHard:
		return trimmed, nil
	}
	return "", errors.New("difficulty must be easy, medium or hard")
}

func validatePoints(points int) (int, error) {
	if points == 0 {
		return 0, nil
	}
	if points < 1 || points > maxQuestionPoints {
		return 0, fmt.Errorf("points must be between 1 and %d", maxQuestionPoints)
	}
	return points, nil
}

func validateRoundLimit(limit, fallback, max int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 1 || limit > max {
		return 0, fmt.Errorf("round_limit must be between 1 and %d", max)
	}
	return limit, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '"', '.', ',', '!', '?', ':', ';', '&', '(', ')', '/', '%', '+':
			continue
		default:
			return false
		}
	}
	return true
}

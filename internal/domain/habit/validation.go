package habit

import (
	"fmt"
	"strings"
)

// DefaultColor is the purple assigned when no colour is given.
const DefaultColor = "#8B5CF6"

// NormalizeColor validates a 6-hex-digit colour code and returns it in
// "#RRGGBB" upper-case form. An empty input yields DefaultColor.
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultColor, nil
	}
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return "", fmt.Errorf("%w: color %q must have 6 hex digits", ErrInvalidInput, color)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("%w: color %q is not hexadecimal", ErrInvalidInput, color)
		}
	}
	return "#" + strings.ToUpper(hex), nil
}

// ValidateName rejects empty and whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

// ValidateGoal rejects negative daily goals.
func ValidateGoal(goal int) error {
	if goal < 0 {
		return fmt.Errorf("%w: daily goal must not be negative", ErrInvalidInput)
	}
	return nil
}

// Package flags provides pflag values shared by gitstamp commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix        = "<"
	choicePlaceholderSuffix        = ">"
	choiceSeparatorLiteral         = "|"
	choiceListSeparatorConstant    = ", "
	choiceUsageEmptyTemplate       = "`%s`"
	choiceUsageFullTemplate        = "`%s` %s"
	unsupportedChoiceErrorTemplate = "unsupported %s %q (expected one of %s)"
	defaultChoiceLabelConstant     = "value"
)

// ChoiceValue is a pflag.Value restricted to a fixed, case-insensitive set of choices.
type ChoiceValue struct {
	label    string
	choices  []string
	selected string
}

var _ pflag.Value = (*ChoiceValue)(nil)

// NewChoiceValue returns a ChoiceValue preset to defaultChoice. The label names
// the value in error messages and doubles as the flag type shown in help.
func NewChoiceValue(label string, defaultChoice string, choices []string) *ChoiceValue {
	trimmedLabel := strings.TrimSpace(label)
	if len(trimmedLabel) == 0 {
		trimmedLabel = defaultChoiceLabelConstant
	}
	return &ChoiceValue{
		label:    trimmedLabel,
		choices:  uniqueChoices(choices),
		selected: strings.ToLower(strings.TrimSpace(defaultChoice)),
	}
}

// Set validates and stores the normalized choice.
func (value *ChoiceValue) Set(candidate string) error {
	normalized := strings.ToLower(strings.TrimSpace(candidate))
	for _, choice := range value.choices {
		if strings.ToLower(choice) == normalized {
			value.selected = normalized
			return nil
		}
	}
	return fmt.Errorf(unsupportedChoiceErrorTemplate, value.label, candidate, strings.Join(value.choices, choiceListSeparatorConstant))
}

func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Type reports the last word of the label, e.g. "format" for "output format".
func (value *ChoiceValue) Type() string {
	labelWords := strings.Fields(value.label)
	return labelWords[len(labelWords)-1]
}

// Usage renders description prefixed with the choices, the default upper-cased.
func (value *ChoiceValue) Usage(description string) string {
	return FormatChoiceUsage(value.selected, value.choices, description)
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := uniqueChoices(choices)
	for choiceIndex, choice := range highlighted {
		if len(normalizedDefault) > 0 && strings.ToLower(choice) == normalizedDefault {
			highlighted[choiceIndex] = strings.ToUpper(choice)
		}
	}

	placeholder := choicePlaceholderPrefix + strings.Join(highlighted, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}
		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}

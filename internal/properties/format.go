package properties

import (
	"fmt"
	"strings"
)

const unsupportedFormatTemplateConstant = "unsupported output format %q (expected one of %s)"

// Format selects how a Set is rendered.
type Format string

// Supported formats.
const (
	FormatText       Format = Format("text")
	FormatProperties Format = Format("properties")
	FormatEnv        Format = Format("env")
	FormatJSON       Format = Format("json")
	FormatYAML       Format = Format("yaml")
	FormatTOML       Format = Format("toml")
	FormatTable      Format = Format("table")
	FormatLDFlags    Format = Format("ldflags")
)

var supportedFormats = []Format{
	FormatText,
	FormatProperties,
	FormatEnv,
	FormatJSON,
	FormatYAML,
	FormatTOML,
	FormatTable,
	FormatLDFlags,
}

// SupportedFormats lists every format in display order.
func SupportedFormats() []string {
	names := make([]string, 0, len(supportedFormats))
	for _, format := range supportedFormats {
		names = append(names, string(format))
	}
	return names
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, format := range supportedFormats {
		if format == normalized {
			return format, nil
		}
	}
	return "", fmt.Errorf(unsupportedFormatTemplateConstant, value, strings.Join(SupportedFormats(), ", "))
}

// UnmarshalText lets configuration decoders validate format names.
func (format *Format) UnmarshalText(text []byte) error {
	parsed, parseError := ParseFormat(string(text))
	if parseError != nil {
		return parseError
	}
	*format = parsed
	return nil
}

// String implements fmt.Stringer.
func (format Format) String() string {
	return string(format)
}

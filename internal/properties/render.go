package properties

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/BurntSushi/toml"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	linkerPackageRequiredMessageConstant = "linker package must be provided for ldflags output"
	displayStringRequiredMessageConstant = "text output requires the display_string property"
	unicodeEscapeTemplateConstant        = `\u%04X`
	lastPrintableASCIIConstant           = '~'
	tablePropertyHeaderConstant          = "PROPERTY"
	tableValueHeaderConstant             = "VALUE"
	propertiesLineTemplateConstant       = "%s=%s\n"
	environmentLineTemplateConstant      = "export %s=%s\n"
	linkerAssignmentTemplateConstant     = "-X %s"
	linkerAssignmentBodyTemplate         = "%s.%s=%s"
	jsonIndentConstant                   = "  "
	yamlIndentConstant                   = 2
	singleQuoteConstant                  = "'"
	doubleQuoteConstant                  = "\""
	shellEscapedSingleQuoteConstant      = `'\''`
)

// ErrLinkerPackageRequired indicates ldflags output without a target package.
var ErrLinkerPackageRequired = errors.New(linkerPackageRequiredMessageConstant)

// ErrDisplayStringRequired indicates text output for a set whose selection
// dropped the display string.
var ErrDisplayStringRequired = errors.New(displayStringRequiredMessageConstant)

// RenderOptions configure Render.
type RenderOptions struct {
	Format        Format
	LinkerPackage string
}

// Render writes the set to writer in the requested format.
func Render(writer io.Writer, set Set, options RenderOptions) error {
	switch options.Format {
	case FormatText:
		return renderText(writer, set)
	case FormatProperties:
		return renderProperties(writer, set)
	case FormatEnv:
		return renderEnvironment(writer, set)
	case FormatJSON:
		return renderJSON(writer, set)
	case FormatYAML:
		return renderYAML(writer, set)
	case FormatTOML:
		return renderTOML(writer, set)
	case FormatTable:
		return renderTable(writer, set)
	case FormatLDFlags:
		return renderLinkerFlags(writer, set, options.LinkerPackage)
	default:
		_, parseError := ParseFormat(string(options.Format))
		return parseError
	}
}

func renderText(writer io.Writer, set Set) error {
	displayString, present := set.Lookup(KeyDisplayString)
	if !present {
		return ErrDisplayStringRequired
	}
	_, writeError := io.WriteString(writer, displayString+"\n")
	return writeError
}

func renderProperties(writer io.Writer, set Set) error {
	for _, property := range set.Properties {
		if _, writeError := fmt.Fprintf(writer, propertiesLineTemplateConstant, escapeProperty(property.Name, true), escapeProperty(property.Value, false)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// escapeProperty applies java.util.Properties escaping. Characters outside
// printable ASCII become \uXXXX since Properties.load reads ISO-8859-1.
func escapeProperty(value string, isKey bool) string {
	var builder strings.Builder
	for characterIndex, character := range value {
		switch character {
		case '\\':
			builder.WriteString(`\\`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		case '=', ':', '#', '!':
			if isKey {
				builder.WriteRune('\\')
			}
			builder.WriteRune(character)
		case ' ':
			if isKey || characterIndex == 0 {
				builder.WriteRune('\\')
			}
			builder.WriteRune(character)
		default:
			if character < ' ' || character > lastPrintableASCIIConstant {
				for _, codeUnit := range utf16.Encode([]rune{character}) {
					fmt.Fprintf(&builder, unicodeEscapeTemplateConstant, codeUnit)
				}
				continue
			}
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

func renderEnvironment(writer io.Writer, set Set) error {
	for _, property := range set.Properties {
		quotedValue := singleQuoteConstant + strings.ReplaceAll(property.Value, singleQuoteConstant, shellEscapedSingleQuoteConstant) + singleQuoteConstant
		if _, writeError := fmt.Fprintf(writer, environmentLineTemplateConstant, EnvironmentName(property.Name), quotedValue); writeError != nil {
			return writeError
		}
	}
	return nil
}

// EnvironmentName converts a property name into a shell variable name.
func EnvironmentName(name string) string {
	var builder strings.Builder
	for characterIndex, character := range name {
		switch {
		case character < unicode.MaxASCII && (unicode.IsLetter(character) || unicode.IsDigit(character)):
			if characterIndex == 0 && unicode.IsDigit(character) {
				builder.WriteRune('_')
			}
			builder.WriteRune(unicode.ToUpper(character))
		default:
			builder.WriteRune('_')
		}
	}
	return builder.String()
}

func flatten(set Set) map[string]string {
	values := make(map[string]string, len(set.Properties))
	for _, property := range set.Properties {
		values[property.Name] = property.Value
	}
	return values
}

func renderJSON(writer io.Writer, set Set) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(flatten(set))
}

// renderYAML builds the mapping node by hand to keep property order.
func renderYAML(writer io.Writer, set Set) error {
	mappingNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, property := range set.Properties {
		mappingNode.Content = append(mappingNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: property.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: property.Value},
		)
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mappingNode}}); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func renderTOML(writer io.Writer, set Set) error {
	return toml.NewEncoder(writer).Encode(flatten(set))
}

func renderTable(writer io.Writer, set Set) error {
	table := tablewriter.NewWriter(writer)
	table.Header(tablePropertyHeaderConstant, tableValueHeaderConstant)
	for _, property := range set.Properties {
		if appendError := table.Append(property.Name, property.Value); appendError != nil {
			return appendError
		}
	}
	return table.Render()
}

// renderLinkerFlags emits -X assignments for every property the go command can
// quote, so the output can be passed to go build -ldflags verbatim.
func renderLinkerFlags(writer io.Writer, set Set, linkerPackage string) error {
	trimmedPackage := strings.TrimSpace(linkerPackage)
	if len(trimmedPackage) == 0 {
		return ErrLinkerPackageRequired
	}

	assignments := make([]string, 0, len(set.Properties))
	for _, property := range set.Properties {
		if !linkerSafeValue(property.Value) {
			continue
		}
		assignment := fmt.Sprintf(linkerAssignmentBodyTemplate, trimmedPackage, LinkerIdentifier(property.Key), property.Value)
		assignments = append(assignments, fmt.Sprintf(linkerAssignmentTemplateConstant, quoteLinkerArgument(assignment)))
	}

	_, writeError := io.WriteString(writer, strings.Join(assignments, " ")+"\n")
	return writeError
}

// LinkerIdentifier converts an unprefixed key such as last_commit_short into
// the exported Go identifier LastCommitShort.
func LinkerIdentifier(key string) string {
	var builder strings.Builder
	for _, segment := range strings.FieldsFunc(key, func(character rune) bool {
		return !unicode.IsLetter(character) && !unicode.IsDigit(character)
	}) {
		segmentRunes := []rune(segment)
		builder.WriteRune(unicode.ToUpper(segmentRunes[0]))
		builder.WriteString(string(segmentRunes[1:]))
	}
	return builder.String()
}

// linkerSafeValue rejects values the go command cannot carry inside one -X
// argument: line breaks, and values holding both quote characters since
// -ldflags quoting has no escapes.
func linkerSafeValue(value string) bool {
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	return !(strings.Contains(value, singleQuoteConstant) && strings.Contains(value, doubleQuoteConstant))
}

func quoteLinkerArgument(argument string) string {
	if !strings.ContainsAny(argument, " \t'\"") {
		return argument
	}
	if !strings.Contains(argument, singleQuoteConstant) {
		return singleQuoteConstant + argument + singleQuoteConstant
	}
	return doubleQuoteConstant + argument + doubleQuoteConstant
}

package cli

import (
	"bytes"
	_ "embed"
)

// defaultConfigurationContent mirrors stamp.DefaultConfigurationValues under
// tools.describe so `gitstamp` behaves the same with or without a config file.
//
//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the bundled configuration and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(defaultConfigurationContent), configurationTypeConstant
}

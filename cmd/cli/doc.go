// Package cli constructs the gitstamp command-line interface. It wires the
// Cobra command hierarchy to the embedded default configuration, the Viper
// configuration loader and the zap logger, and registers the describe and
// postfix commands.
package cli

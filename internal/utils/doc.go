// Package utils holds the ambient plumbing shared by gitstamp commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// GITSTAMP_ environment variables through Viper. LoggerFactory builds the zap
// logger that writes to standard error. WriteOutput delivers rendered
// properties to standard output or replaces an output file atomically.
package utils

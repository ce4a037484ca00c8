// Package execshell runs external tools such as git with structured logging.
//
// ShellExecutor validates its collaborators, logs lifecycle messages produced
// by CommandMessageFormatter, and converts non-zero exit codes into typed
// errors. OSCommandRunner is the default os/exec backed runner.
package execshell

package stamp

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/gitstamp/internal/execshell"
	"github.com/temirov/gitstamp/internal/gitreader"
	"github.com/temirov/gitstamp/internal/repoinfo"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded command configuration.
type ConfigurationProvider func() CommandConfiguration

// RepositoryReader resolves repository facts for a path on disk.
type RepositoryReader interface {
	Read(executionContext context.Context, repositoryPath string) (repoinfo.RepositoryInfo, error)
}

// ReaderFactory constructs a RepositoryReader for the resolved options.
type ReaderFactory func(logger *zap.Logger, gitExecutor gitreader.GitExecutor, options gitreader.Options) (RepositoryReader, error)

// dependencySet groups the collaborators shared by the describe and postfix builders.
type dependencySet struct {
	loggerProvider        LoggerProvider
	gitExecutor           gitreader.GitExecutor
	readerFactory         ReaderFactory
	configurationProvider ConfigurationProvider
}

func (dependencies dependencySet) resolveLogger() *zap.Logger {
	if dependencies.loggerProvider == nil {
		return zap.NewNop()
	}

	logger := dependencies.loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (dependencies dependencySet) resolveConfiguration() CommandConfiguration {
	if dependencies.configurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return dependencies.configurationProvider().Sanitize()
}

func (dependencies dependencySet) resolveGitExecutor(logger *zap.Logger, verifyWithGit bool) (gitreader.GitExecutor, error) {
	if !verifyWithGit {
		return nil, nil
	}
	if dependencies.gitExecutor != nil {
		return dependencies.gitExecutor, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func (dependencies dependencySet) resolveReader(logger *zap.Logger, gitExecutor gitreader.GitExecutor, options gitreader.Options) (RepositoryReader, error) {
	if dependencies.readerFactory != nil {
		return dependencies.readerFactory(logger, gitExecutor, options)
	}

	reader, creationError := gitreader.NewReader(gitreader.ReaderDependencies{Logger: logger, GitExecutor: gitExecutor}, options)
	if creationError != nil {
		return nil, creationError
	}
	return reader, nil
}

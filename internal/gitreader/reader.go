package gitreader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/temirov/gitstamp/internal/execshell"
	"github.com/temirov/gitstamp/internal/repoinfo"
)

const (
	loggerNotConfiguredMessageConstant     = "logger not configured"
	repositoryPathRequiredMessageConstant  = "repository path must be provided"
	noCommitsMessageConstant               = "repository has no commits"
	repositoryOpenErrorTemplateConstant    = "unable to open repository %s: %w"
	headResolutionErrorTemplateConstant    = "unable to resolve HEAD in %s: %w"
	commitLookupErrorTemplateConstant      = "unable to read commit %s: %w"
	worktreeStatusErrorTemplateConstant    = "unable to read working tree status in %s: %w"
	lastTagResolutionErrorTemplateConstant = "unable to resolve last tag in %s: %w"
	noCommitsErrorTemplateConstant         = "%w: %s"
	repositoryReadMessageConstant          = "repository facts resolved"
	logFieldRepositoryConstant             = "repository"
	logFieldBranchConstant                 = "branch"
	logFieldCommitConstant                 = "commit"
	logFieldWorkingCopyDirtyConstant       = "working_copy_dirty"
	logFieldLastTagConstant                = "last_tag"
	logFieldLastTagDirtyConstant           = "last_tag_dirty"
	defaultShortHashLengthConstant         = 7
	minimumShortHashLengthConstant         = 4
	fullHashLengthConstant                 = 40
)

// ErrLoggerNotConfigured indicates the reader was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrNoCommits indicates HEAD does not point at a commit yet.
var ErrNoCommits = errors.New(noCommitsMessageConstant)

// GitExecutor runs git through the shell.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ReaderDependencies enumerates collaborators required by the reader.
type ReaderDependencies struct {
	Logger      *zap.Logger
	GitExecutor GitExecutor
}

// Options tune how repository facts are resolved.
type Options struct {
	ShortHashLength  int
	IncludeUntracked bool
	VerifyWithGitCLI bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ShortHashLength:  defaultShortHashLengthConstant,
		IncludeUntracked: false,
		VerifyWithGitCLI: true,
	}
}

func (options Options) sanitize() Options {
	sanitized := options
	switch {
	case sanitized.ShortHashLength <= 0:
		sanitized.ShortHashLength = defaultShortHashLengthConstant
	case sanitized.ShortHashLength < minimumShortHashLengthConstant:
		sanitized.ShortHashLength = minimumShortHashLengthConstant
	case sanitized.ShortHashLength > fullHashLengthConstant:
		sanitized.ShortHashLength = fullHashLengthConstant
	}
	return sanitized
}

// Reader resolves RepositoryInfo values from Git repositories on disk.
type Reader struct {
	logger      *zap.Logger
	gitExecutor GitExecutor
	options     Options
}

// NewReader validates dependencies and constructs a Reader.
func NewReader(dependencies ReaderDependencies, options Options) (*Reader, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	return &Reader{
		logger:      dependencies.Logger,
		gitExecutor: dependencies.GitExecutor,
		options:     options.sanitize(),
	}, nil
}

// Read opens the repository containing repositoryPath and resolves its facts.
func (reader *Reader) Read(executionContext context.Context, repositoryPath string) (repoinfo.RepositoryInfo, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return repoinfo.RepositoryInfo{}, ErrRepositoryPathRequired
	}

	repository, openError := git.PlainOpenWithOptions(trimmedRepositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return repoinfo.RepositoryInfo{}, fmt.Errorf(repositoryOpenErrorTemplateConstant, trimmedRepositoryPath, openError)
	}

	headReference, headError := repository.Head()
	if headError != nil {
		if errors.Is(headError, plumbing.ErrReferenceNotFound) {
			return repoinfo.RepositoryInfo{}, fmt.Errorf(noCommitsErrorTemplateConstant, ErrNoCommits, trimmedRepositoryPath)
		}
		return repoinfo.RepositoryInfo{}, fmt.Errorf(headResolutionErrorTemplateConstant, trimmedRepositoryPath, headError)
	}

	currentBranch := ""
	if headReference.Name().IsBranch() {
		currentBranch = headReference.Name().Short()
	}

	headCommit, commitError := repository.CommitObject(headReference.Hash())
	if commitError != nil {
		return repoinfo.RepositoryInfo{}, fmt.Errorf(commitLookupErrorTemplateConstant, headReference.Hash(), commitError)
	}
	lastCommitHash := headCommit.Hash.String()

	workingCopyDirty, dirtyError := reader.resolveWorkingCopyDirty(executionContext, repository, trimmedRepositoryPath)
	if dirtyError != nil {
		return repoinfo.RepositoryInfo{}, fmt.Errorf(worktreeStatusErrorTemplateConstant, trimmedRepositoryPath, dirtyError)
	}

	lastTag, taggedCommitHash, tagError := resolveLastTag(executionContext, repository, headCommit)
	if tagError != nil {
		return repoinfo.RepositoryInfo{}, fmt.Errorf(lastTagResolutionErrorTemplateConstant, trimmedRepositoryPath, tagError)
	}

	lastTagDirty := lastTag == nil || taggedCommitHash != headCommit.Hash

	lastTagName := ""
	if lastTag != nil {
		lastTagName = lastTag.Name
	}
	reader.logger.Debug(
		repositoryReadMessageConstant,
		zap.String(logFieldRepositoryConstant, trimmedRepositoryPath),
		zap.String(logFieldBranchConstant, currentBranch),
		zap.String(logFieldCommitConstant, lastCommitHash),
		zap.Bool(logFieldWorkingCopyDirtyConstant, workingCopyDirty),
		zap.String(logFieldLastTagConstant, lastTagName),
		zap.Bool(logFieldLastTagDirtyConstant, lastTagDirty),
	)

	return repoinfo.Create(
		currentBranch,
		lastCommitHash,
		lastCommitHash[:reader.options.ShortHashLength],
		headCommit.Committer.When,
		workingCopyDirty,
		lastTag,
		lastTagDirty,
	), nil
}

package gitreader

import (
	"context"
	"errors"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/temirov/gitstamp/internal/repoinfo"
)

// tagCandidate is a tag reference peeled to the commit it marks.
type tagCandidate struct {
	name       string
	commitHash plumbing.Hash
	annotated  *object.Tag
}

func (candidate tagCandidate) taggedAt() time.Time {
	if candidate.annotated == nil {
		return time.Time{}
	}
	return candidate.annotated.Tagger.When
}

// preferredOver orders tags sharing a commit: annotated first, then the newest
// tagger date, then the greater name.
func (candidate tagCandidate) preferredOver(other tagCandidate) bool {
	candidateAnnotated := candidate.annotated != nil
	otherAnnotated := other.annotated != nil
	if candidateAnnotated != otherAnnotated {
		return candidateAnnotated
	}
	if !candidate.taggedAt().Equal(other.taggedAt()) {
		return candidate.taggedAt().After(other.taggedAt())
	}
	return candidate.name > other.name
}

func (candidate tagCandidate) toTag() *repoinfo.Tag {
	if candidate.annotated == nil {
		return &repoinfo.Tag{
			Name:   candidate.name,
			Object: repoinfo.ReferenceObject{Hash: candidate.commitHash.String()},
		}
	}

	var tagger *repoinfo.Identity
	signature := candidate.annotated.Tagger
	if len(signature.Name) > 0 || len(signature.Email) > 0 {
		tagger = &repoinfo.Identity{Name: signature.Name, Email: signature.Email}
	}

	return &repoinfo.Tag{
		Name:   candidate.name,
		Object: repoinfo.AnnotatedTagObject{Hash: candidate.annotated.Hash.String(), Tagger: tagger},
	}
}

// indexTagsByCommit maps every commit carrying a tag to its preferred tag.
// Tags that do not resolve to a commit are ignored.
func indexTagsByCommit(repository *git.Repository) (map[plumbing.Hash]tagCandidate, error) {
	tagReferences, referencesError := repository.Tags()
	if referencesError != nil {
		return nil, referencesError
	}
	defer tagReferences.Close()

	tagsByCommit := make(map[plumbing.Hash]tagCandidate)
	iterationError := tagReferences.ForEach(func(reference *plumbing.Reference) error {
		candidate, resolved, resolveError := peelTagReference(repository, reference)
		if resolveError != nil {
			return resolveError
		}
		if !resolved {
			return nil
		}
		existing, exists := tagsByCommit[candidate.commitHash]
		if !exists || candidate.preferredOver(existing) {
			tagsByCommit[candidate.commitHash] = candidate
		}
		return nil
	})
	if iterationError != nil {
		return nil, iterationError
	}

	return tagsByCommit, nil
}

func peelTagReference(repository *git.Repository, reference *plumbing.Reference) (tagCandidate, bool, error) {
	candidate := tagCandidate{name: reference.Name().Short()}

	tagObject, tagError := repository.TagObject(reference.Hash())
	switch {
	case errors.Is(tagError, plumbing.ErrObjectNotFound):
		if _, commitError := repository.CommitObject(reference.Hash()); commitError != nil {
			if errors.Is(commitError, plumbing.ErrObjectNotFound) {
				return tagCandidate{}, false, nil
			}
			return tagCandidate{}, false, commitError
		}
		candidate.commitHash = reference.Hash()
		return candidate, true, nil
	case tagError != nil:
		return tagCandidate{}, false, tagError
	}

	candidate.annotated = tagObject
	target := tagObject
	for target.TargetType == plumbing.TagObject {
		nestedTag, nestedError := repository.TagObject(target.Target)
		if nestedError != nil {
			return tagCandidate{}, false, nestedError
		}
		target = nestedTag
	}
	if target.TargetType != plumbing.CommitObject {
		return tagCandidate{}, false, nil
	}

	candidate.commitHash = target.Target
	return candidate, true, nil
}

// resolveLastTag walks history from headCommit in committer time order and
// returns the first tag found together with the commit it marks.
func resolveLastTag(executionContext context.Context, repository *git.Repository, headCommit *object.Commit) (*repoinfo.Tag, plumbing.Hash, error) {
	tagsByCommit, indexError := indexTagsByCommit(repository)
	if indexError != nil {
		return nil, plumbing.ZeroHash, indexError
	}
	if len(tagsByCommit) == 0 {
		return nil, plumbing.ZeroHash, nil
	}

	commitIterator, logError := repository.Log(&git.LogOptions{From: headCommit.Hash, Order: git.LogOrderCommitterTime})
	if logError != nil {
		return nil, plumbing.ZeroHash, logError
	}
	defer commitIterator.Close()

	var found *tagCandidate
	walkError := commitIterator.ForEach(func(commit *object.Commit) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		candidate, tagged := tagsByCommit[commit.Hash]
		if !tagged {
			return nil
		}
		found = &candidate
		return storer.ErrStop
	})
	if walkError != nil {
		return nil, plumbing.ZeroHash, walkError
	}

	if found == nil {
		return nil, plumbing.ZeroHash, nil
	}
	return found.toTag(), found.commitHash, nil
}

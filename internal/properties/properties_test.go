package properties_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstamp/internal/properties"
	"github.com/temirov/gitstamp/internal/repoinfo"
)

const (
	testBranchConstant              = "main"
	testCommitHashConstant          = "deadbee1234567890deadbee1234567890deadbe"
	testCommitShortHashConstant     = "deadbee"
	testTagNameConstant             = "v1.2.0"
	testTagObjectHashConstant       = "0123456789abcdef0123456789abcdef01234567"
	testTaggerNameConstant          = "Alice"
	testTaggerEmailConstant         = "alice@example.com"
	testCustomPrefixConstant        = "build."
	testSubtestNameTemplateConstant = "%d_%s"
)

func taggedInfo(commitDate time.Time) repoinfo.RepositoryInfo {
	tag := &repoinfo.Tag{
		Name: testTagNameConstant,
		Object: repoinfo.AnnotatedTagObject{
			Hash:   testTagObjectHashConstant,
			Tagger: &repoinfo.Identity{Name: testTaggerNameConstant, Email: testTaggerEmailConstant},
		},
	}
	return repoinfo.Create(testBranchConstant, testCommitHashConstant, testCommitShortHashConstant, commitDate, false, tag, false)
}

func TestBuildPublishesOrderedKeys(testInstance *testing.T) {
	commitDate := time.Date(2024, time.March, 14, 9, 26, 53, 0, time.FixedZone("CEST", 2*60*60))
	set := properties.Build(taggedInfo(commitDate), properties.DefaultPrefix, "")

	expected := []struct {
		key   string
		value string
	}{
		{properties.KeyBranch, testBranchConstant},
		{properties.KeyLastCommit, testCommitHashConstant},
		{properties.KeyLastCommitShort, testCommitShortHashConstant},
		{properties.KeyLastCommitDate, "2024-03-14T07:26:53Z"},
		{properties.KeyWorkingCopyDirty, "false"},
		{properties.KeyLastTag, testTagNameConstant},
		{properties.KeyLastTagHash, testTagObjectHashConstant},
		{properties.KeyLastTagDirty, "false"},
		{properties.KeyLastTagAuthorName, testTaggerNameConstant},
		{properties.KeyLastTagAuthorEmail, testTaggerEmailConstant},
		{properties.KeyVersionPostfix, testTagNameConstant},
	}

	require.Equal(testInstance, properties.DefaultPrefix, set.Prefix)
	require.Len(testInstance, set.Properties, len(expected)+1)
	for index, expectation := range expected {
		property := set.Properties[index]
		require.Equal(testInstance, expectation.key, property.Key)
		require.Equal(testInstance, properties.DefaultPrefix+expectation.key, property.Name)
		require.Equal(testInstance, expectation.value, property.Value)
	}

	displayProperty := set.Properties[len(expected)]
	require.Equal(testInstance, properties.KeyDisplayString, displayProperty.Key)
	require.Equal(testInstance, taggedInfo(commitDate).DisplayString(), displayProperty.Value)
}

func TestBuildHandlesPrefixAndDates(testInstance *testing.T) {
	commitDate := time.Date(2024, time.March, 14, 9, 26, 53, 0, time.UTC)

	testCases := []struct {
		name         string
		info         repoinfo.RepositoryInfo
		prefix       string
		dateLayout   string
		expectedName string
		expectedDate string
	}{
		{
			name:         "custom_prefix_and_layout",
			info:         taggedInfo(commitDate),
			prefix:       testCustomPrefixConstant,
			dateLayout:   time.DateOnly,
			expectedName: testCustomPrefixConstant + properties.KeyLastCommitDate,
			expectedDate: "2024-03-14",
		},
		{
			name:         "empty_prefix",
			info:         taggedInfo(commitDate),
			prefix:       "",
			dateLayout:   properties.DefaultDateLayout,
			expectedName: properties.KeyLastCommitDate,
			expectedDate: "2024-03-14T09:26:53Z",
		},
		{
			name:         "zero_date_is_blank",
			info:         repoinfo.RepositoryInfo{},
			prefix:       properties.DefaultPrefix,
			expectedName: properties.DefaultPrefix + properties.KeyLastCommitDate,
			expectedDate: "",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			set := properties.Build(testCase.info, testCase.prefix, testCase.dateLayout)

			var found *properties.Property
			for index := range set.Properties {
				if set.Properties[index].Name == testCase.expectedName {
					found = &set.Properties[index]
				}
			}
			require.NotNil(subtest, found)
			require.Equal(subtest, testCase.expectedDate, found.Value)
		})
	}
}

func TestSetLookup(testInstance *testing.T) {
	set := properties.Build(taggedInfo(time.Time{}), testCustomPrefixConstant, "")

	value, found := set.Lookup(properties.KeyLastTag)
	require.True(testInstance, found)
	require.Equal(testInstance, testTagNameConstant, value)

	_, found = set.Lookup(testCustomPrefixConstant + properties.KeyLastTag)
	require.False(testInstance, found)
}

func TestSetSelect(testInstance *testing.T) {
	set := properties.Build(taggedInfo(time.Time{}), properties.DefaultPrefix, "")

	testCases := []struct {
		name         string
		keys         []string
		expectedKeys []string
		expectError  bool
	}{
		{
			name:         "empty_selection_keeps_everything",
			keys:         nil,
			expectedKeys: nil,
		},
		{
			name:         "published_order_is_kept",
			keys:         []string{properties.KeyVersionPostfix, " " + properties.KeyBranch, ""},
			expectedKeys: []string{properties.KeyBranch, properties.KeyVersionPostfix},
		},
		{
			name:        "unknown_key_rejected",
			keys:        []string{properties.KeyBranch, "build_number"},
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			selected, selectError := set.Select(testCase.keys)
			if testCase.expectError {
				require.ErrorIs(subtest, selectError, properties.ErrUnknownKey)
				return
			}
			require.NoError(subtest, selectError)
			if testCase.expectedKeys == nil {
				require.Equal(subtest, set, selected)
				return
			}
			actualKeys := make([]string, 0, len(selected.Properties))
			for _, property := range selected.Properties {
				actualKeys = append(actualKeys, property.Key)
			}
			require.Equal(subtest, testCase.expectedKeys, actualKeys)
			require.Equal(subtest, set.Prefix, selected.Prefix)
		})
	}
}

// Package ignore compiles gitignore patterns into a single immutable path matcher.
package ignore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/temirov/ftctx/internal/config"
)

const (
	pathSeparator        = "/"
	windowsPathSeparator = "\\"
)

// Matcher reports whether a root-relative path is excluded by the compiled patterns.
// Directory paths are expected to carry a trailing slash. A Matcher is never modified
// after construction and a nil Matcher excludes nothing.
type Matcher struct {
	compiled     gitignore.Matcher
	patternCount int
}

// NewMatcher compiles patterns written in gitignore syntax. Later patterns take precedence,
// so a negated pattern re-includes paths matched earlier. Patterns are relative to the
// project root: a pattern holding a slash anywhere but at its end is anchored there.
func NewMatcher(patterns []string) *Matcher {
	if len(patterns) == 0 {
		return &Matcher{}
	}
	parsedPatterns := make([]gitignore.Pattern, 0, len(patterns))
	for _, patternLine := range patterns {
		parsedPatterns = append(parsedPatterns, gitignore.ParsePattern(patternLine, nil))
	}
	return &Matcher{
		compiled:     gitignore.NewMatcher(parsedPatterns),
		patternCount: len(patterns),
	}
}

// LoadMatcher builds a Matcher from the listed ignore files under rootDirectoryPath.
// Missing files are skipped; with nothing loaded the Matcher excludes nothing.
func LoadMatcher(rootDirectoryPath string, ignoreFileNames []string) (*Matcher, error) {
	patterns, loadError := config.LoadCombinedIgnorePatterns(rootDirectoryPath, ignoreFileNames)
	if loadError != nil {
		return nil, loadError
	}
	return NewMatcher(patterns), nil
}

// Ignores reports whether relativePath is excluded. A trailing slash marks a directory.
func (matcher *Matcher) Ignores(relativePath string) bool {
	if matcher == nil || matcher.compiled == nil {
		return false
	}
	normalizedPath := strings.ReplaceAll(relativePath, windowsPathSeparator, pathSeparator)
	isDirectory := strings.HasSuffix(normalizedPath, pathSeparator)
	trimmedPath := strings.Trim(normalizedPath, pathSeparator)
	if trimmedPath == "" {
		return false
	}
	return matcher.compiled.Match(strings.Split(trimmedPath, pathSeparator), isDirectory)
}

// PatternCount returns how many pattern lines were compiled.
func (matcher *Matcher) PatternCount() int {
	if matcher == nil {
		return 0
	}
	return matcher.patternCount
}

package ignore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/ftctx/internal/ignore"
	"github.com/temirov/ftctx/internal/utils"
)

// TestMatcherIgnores verifies gitignore-style decisions for files and directories.
func TestMatcherIgnores(testingHandle *testing.T) {
	matcher := ignore.NewMatcher([]string{"*.log", "!keep.log", "build/", "/root-only.txt", "docs/*.md", "cache"})
	testCases := []struct {
		testName     string
		relativePath string
		expected     bool
	}{
		{testName: "wildcard at root", relativePath: "debug.log", expected: true},
		{testName: "wildcard nested", relativePath: "logs/debug.log", expected: true},
		{testName: "negation re-includes", relativePath: "keep.log", expected: false},
		{testName: "directory pattern matches directory", relativePath: "build/", expected: true},
		{testName: "directory pattern matches nested directory", relativePath: "src/build/", expected: true},
		{testName: "directory pattern skips file", relativePath: "build", expected: false},
		{testName: "anchored pattern at root", relativePath: "root-only.txt", expected: true},
		{testName: "anchored pattern not nested", relativePath: "sub/root-only.txt", expected: false},
		{testName: "path pattern", relativePath: "docs/readme.md", expected: true},
		{testName: "path pattern other directory", relativePath: "notes/readme.md", expected: false},
		{testName: "bare name matches directory", relativePath: "cache/", expected: true},
		{testName: "unmatched", relativePath: "main.go", expected: false},
	}
	for index, testCase := range testCases {
		actual := matcher.Ignores(testCase.relativePath)
		if actual != testCase.expected {
			testingHandle.Errorf("case %d (%s): expected %t for %s, got %t", index, testCase.testName, testCase.expected, testCase.relativePath, actual)
		}
	}
}

// TestMatcherWithoutPatternsIgnoresNothing verifies the empty and nil matchers.
func TestMatcherWithoutPatternsIgnoresNothing(testingHandle *testing.T) {
	var nilMatcher *ignore.Matcher
	emptyMatcher := ignore.NewMatcher(nil)
	for _, candidatePath := range []string{"a.txt", "build/", "deep/nested/file.go"} {
		if nilMatcher.Ignores(candidatePath) {
			testingHandle.Errorf("nil matcher ignored %s", candidatePath)
		}
		if emptyMatcher.Ignores(candidatePath) {
			testingHandle.Errorf("empty matcher ignored %s", candidatePath)
		}
	}
	if emptyMatcher.PatternCount() != 0 || nilMatcher.PatternCount() != 0 {
		testingHandle.Errorf("expected zero patterns")
	}
}

// TestLoadMatcherMergesFilesInOrder verifies that a later file can negate an earlier one.
func TestLoadMatcherMergesFilesInOrder(testingHandle *testing.T) {
	const secondaryIgnoreFileName = ".treeignore"
	rootDirectory := testingHandle.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootDirectory, utils.GitIgnoreFileName), []byte("*.gen.go\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("write gitignore: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, secondaryIgnoreFileName), []byte("!api.gen.go\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("write secondary ignore file: %v", writeError)
	}

	matcher, loadError := ignore.LoadMatcher(rootDirectory, []string{utils.GitIgnoreFileName, "absent.ignore", secondaryIgnoreFileName})
	if loadError != nil {
		testingHandle.Fatalf("LoadMatcher failed: %v", loadError)
	}
	if matcher.PatternCount() != 2 {
		testingHandle.Fatalf("expected 2 patterns, got %d", matcher.PatternCount())
	}
	if !matcher.Ignores("model.gen.go") {
		testingHandle.Errorf("expected model.gen.go to be ignored")
	}
	if matcher.Ignores("api.gen.go") {
		testingHandle.Errorf("expected api.gen.go to be re-included")
	}
}

// TestLoadMatcherNoFiles verifies that missing ignore files yield a matcher that excludes nothing.
func TestLoadMatcherNoFiles(testingHandle *testing.T) {
	matcher, loadError := ignore.LoadMatcher(testingHandle.TempDir(), []string{utils.GitIgnoreFileName})
	if loadError != nil {
		testingHandle.Fatalf("LoadMatcher failed: %v", loadError)
	}
	if matcher.Ignores("anything.txt") {
		testingHandle.Errorf("expected nothing to be ignored")
	}
}

// TestMatcherGlobSyntax verifies wildcard, character class, literal punctuation and anchoring rules.
func TestMatcherGlobSyntax(testingHandle *testing.T) {
	testCases := []struct {
		testName     string
		pattern      string
		relativePath string
		expected     bool
	}{
		{testName: "question mark matches one character", pattern: "file?.txt", relativePath: "file1.txt", expected: true},
		{testName: "question mark needs a character", pattern: "file?.txt", relativePath: "file.txt", expected: false},
		{testName: "question mark in directory pattern", pattern: "log?/", relativePath: "log1/", expected: true},
		{testName: "character class", pattern: "[a-c].go", relativePath: "b.go", expected: true},
		{testName: "character class outside range", pattern: "[a-c].go", relativePath: "x.go", expected: false},
		{testName: "literal plus", pattern: "a+b.txt", relativePath: "a+b.txt", expected: true},
		{testName: "plus is not repetition", pattern: "a+b.txt", relativePath: "aab.txt", expected: false},
		{testName: "double plus", pattern: "c++", relativePath: "c++", expected: true},
		{testName: "literal parentheses", pattern: "foo(bar).txt", relativePath: "foo(bar).txt", expected: true},
		{testName: "middle slash anchors at root", pattern: "doc/frotz", relativePath: "doc/frotz", expected: true},
		{testName: "middle slash not nested", pattern: "doc/frotz", relativePath: "a/doc/frotz", expected: false},
		{testName: "middle slash covers descendants", pattern: "doc/frotz", relativePath: "doc/frotz/page.md", expected: true},
		{testName: "double star prefix", pattern: "**/generated", relativePath: "a/b/generated/", expected: true},
		{testName: "directory pattern covers descendants", pattern: "build/", relativePath: "build/out/app", expected: true},
	}
	for index, testCase := range testCases {
		actual := ignore.NewMatcher([]string{testCase.pattern}).Ignores(testCase.relativePath)
		if actual != testCase.expected {
			testingHandle.Errorf("case %d (%s): expected %t for %q against %q, got %t", index, testCase.testName, testCase.expected, testCase.pattern, testCase.relativePath, actual)
		}
	}
}

// TestMatcherLastMatchWins verifies that repeated patterns keep their order.
func TestMatcherLastMatchWins(testingHandle *testing.T) {
	matcher := ignore.NewMatcher([]string{"a", "!a", "a"})
	if !matcher.Ignores("a") {
		testingHandle.Errorf("expected the final pattern to exclude a")
	}
	if matcher.PatternCount() != 3 {
		testingHandle.Errorf("expected 3 patterns, got %d", matcher.PatternCount())
	}
}

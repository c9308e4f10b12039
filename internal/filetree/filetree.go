// Package filetree walks a project directory and renders it as an indented text tree.
package filetree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ftctx/internal/utils"
)

const (
	// BranchConnector precedes an entry that is not the last one of its directory listing.
	BranchConnector = "├──"
	// LastConnector precedes the entry at the final index of its directory listing.
	LastConnector = "└──"
	// BranchPadding extends the prefix below a branch entry.
	BranchPadding = "│   "
	// LastPadding extends the prefix below a last entry.
	LastPadding = "    "

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// PathMatcher decides whether a root-relative path is excluded from the tree.
// Directory paths carry a trailing slash.
type PathMatcher interface {
	Ignores(relativePath string) bool
}

// Row describes one visible entry of the tree.
type Row struct {
	Prefix       string
	Connector    string
	Name         string
	RelativePath string
	IsDirectory  bool
}

// Walk lists directoryPath depth first and returns one Row per visible entry.
//
// Entries keep the order returned by os.ReadDir. Hidden entries and entries excluded by
// matcher are dropped together with everything below them. The last connector goes to the
// entry at the final index of the raw listing, so a visible entry followed only by dropped
// entries still receives the branch connector.
func Walk(directoryPath string, rootDirectoryPath string, matcher PathMatcher) ([]Row, error) {
	return walkDirectory(directoryPath, rootDirectoryPath, matcher, "")
}

func walkDirectory(currentDirectoryPath string, rootDirectoryPath string, matcher PathMatcher, prefix string) ([]Row, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var rows []Row
	lastEntryIndex := len(directoryEntries) - 1
	for entryIndex, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if utils.IsHiddenName(entryName) {
			continue
		}

		childPath := filepath.Join(currentDirectoryPath, entryName)
		isDirectory := directoryEntry.IsDir()
		relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
		if isDirectory {
			relativeChildPath = utils.DirectoryMatchPath(relativeChildPath)
		}
		if matcher != nil && matcher.Ignores(relativeChildPath) {
			continue
		}

		connector, childPadding := BranchConnector, BranchPadding
		if entryIndex == lastEntryIndex {
			connector, childPadding = LastConnector, LastPadding
		}
		rows = append(rows, Row{
			Prefix:       prefix,
			Connector:    connector,
			Name:         entryName,
			RelativePath: relativeChildPath,
			IsDirectory:  isDirectory,
		})

		if isDirectory {
			childRows, walkError := walkDirectory(childPath, rootDirectoryPath, matcher, prefix+childPadding)
			if walkError != nil {
				return nil, walkError
			}
			rows = append(rows, childRows...)
		}
	}
	return rows, nil
}

// Render joins rows into tree text. Each row ends with a newline; no rows render as "".
func Render(rows []Row) string {
	var builder strings.Builder
	for _, row := range rows {
		builder.WriteString(row.Prefix)
		builder.WriteString(row.Connector)
		builder.WriteString(" ")
		builder.WriteString(row.Name)
		builder.WriteString("\n")
	}
	return builder.String()
}

// Generate walks directoryPath and renders the result.
func Generate(directoryPath string, rootDirectoryPath string, matcher PathMatcher) (string, error) {
	rows, walkError := Walk(directoryPath, rootDirectoryPath, matcher)
	if walkError != nil {
		return "", walkError
	}
	return Render(rows), nil
}

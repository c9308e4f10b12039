// Package utils contains general helper functions used across ftctx.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// IsHiddenName reports whether a directory entry name starts with the hidden-entry marker.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, HiddenEntryPrefix)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	absolutePath, err := filepath.Abs(cleanPath)
	if err == nil {
		cleanPath = absolutePath
	}

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}

// DirectoryMatchPath appends the trailing separator used when matching a directory against ignore rules.
func DirectoryMatchPath(relativePath string) string {
	if strings.HasSuffix(relativePath, pathSegmentSeparator) {
		return relativePath
	}
	return relativePath + pathSegmentSeparator
}

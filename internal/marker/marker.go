// Package marker splices generated tree text into the machine-managed region of a document.
package marker

import "strings"

const (
	// OpeningTag starts the managed region.
	OpeningTag = "<FileTree>"
	// ClosingTag ends the managed region.
	ClosingTag = "</FileTree>"
	// EmptyDocument seeds a target file that does not exist yet.
	EmptyDocument = OpeningTag + ClosingTag

	lineBreak = "\n"
)

// Inject returns document with the region between the first OpeningTag and the first
// ClosingTag replaced by a line break followed by treeText. Text outside the region is kept
// verbatim and later tag pairs are left alone.
//
// The relative order of the two tags is not checked. When either tag is missing the
// document body is discarded and a fresh region wrapping treeText is returned.
func Inject(document string, treeText string) string {
	openingIndex := strings.Index(document, OpeningTag)
	closingIndex := strings.Index(document, ClosingTag)
	if openingIndex == -1 || closingIndex == -1 {
		return OpeningTag + lineBreak + treeText + lineBreak + ClosingTag
	}

	var builder strings.Builder
	builder.Grow(len(document) + len(treeText) + len(lineBreak))
	builder.WriteString(document[:openingIndex+len(OpeningTag)])
	builder.WriteString(lineBreak)
	builder.WriteString(treeText)
	builder.WriteString(document[closingIndex:])
	return builder.String()
}

// HasRegion reports whether document holds both tags.
func HasRegion(document string) bool {
	return strings.Contains(document, OpeningTag) && strings.Contains(document, ClosingTag)
}

package marker_test

import (
	"testing"

	"github.com/temirov/ftctx/internal/marker"
)

const sampleTree = "├── a.txt\n└── b\n    └── c.txt\n"

func TestInject(t *testing.T) {
	testCases := []struct {
		name     string
		document string
		tree     string
		expected string
	}{
		{
			name:     "empty_region_keeps_surrounding_text",
			document: "prefix <FileTree></FileTree> suffix",
			tree:     sampleTree,
			expected: "prefix <FileTree>\n" + sampleTree + "</FileTree> suffix",
		},
		{
			name:     "stale_region_is_replaced",
			document: "# Project\n\n<FileTree>\n└── old.txt\n</FileTree>\n\nMore text.\n",
			tree:     sampleTree,
			expected: "# Project\n\n<FileTree>\n" + sampleTree + "</FileTree>\n\nMore text.\n",
		},
		{
			name:     "missing_markers_discard_document",
			document: "hello world",
			tree:     sampleTree,
			expected: "<FileTree>\n" + sampleTree + "\n</FileTree>",
		},
		{
			name:     "missing_closing_marker_discards_document",
			document: "intro <FileTree> dangling",
			tree:     sampleTree,
			expected: "<FileTree>\n" + sampleTree + "\n</FileTree>",
		},
		{
			name:     "seed_document",
			document: marker.EmptyDocument,
			tree:     sampleTree,
			expected: "<FileTree>\n" + sampleTree + "</FileTree>",
		},
		{
			name:     "empty_tree",
			document: "a<FileTree>x</FileTree>b",
			tree:     "",
			expected: "a<FileTree>\n</FileTree>b",
		},
		{
			name:     "only_first_pair_is_replaced",
			document: "<FileTree>one</FileTree> <FileTree>two</FileTree>",
			tree:     "└── x\n",
			expected: "<FileTree>\n└── x\n</FileTree> <FileTree>two</FileTree>",
		},
		{
			name:     "closing_before_opening_is_accepted",
			document: "</FileTree>mid<FileTree>",
			tree:     "└── x\n",
			expected: "</FileTree>mid<FileTree>\n└── x\n</FileTree>mid<FileTree>",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := marker.Inject(testCase.document, testCase.tree)
			if actual != testCase.expected {
				t.Fatalf("unexpected document:\n%q\nwant:\n%q", actual, testCase.expected)
			}
		})
	}
}

func TestInjectIsIdempotent(t *testing.T) {
	first := marker.Inject("top\n<FileTree></FileTree>\nbottom", sampleTree)
	second := marker.Inject(first, sampleTree)
	if first != second {
		t.Fatalf("expected identical output, got:\n%q\nthen:\n%q", first, second)
	}
}

func TestInjectSynthesizedDocumentSettlesAfterOneRun(t *testing.T) {
	synthesized := marker.Inject("no markers", sampleTree)
	if !marker.HasRegion(synthesized) {
		t.Fatalf("expected synthesized document to carry both tags: %q", synthesized)
	}
	settled := marker.Inject(synthesized, sampleTree)
	if settled != "<FileTree>\n"+sampleTree+"</FileTree>" {
		t.Fatalf("unexpected settled document %q", settled)
	}
	if marker.Inject(settled, sampleTree) != settled {
		t.Fatalf("settled document changed on re-injection")
	}
}

func TestHasRegion(t *testing.T) {
	if !marker.HasRegion("x <FileTree></FileTree>") {
		t.Fatalf("expected region to be detected")
	}
	if marker.HasRegion("x <FileTree>") || marker.HasRegion("plain") {
		t.Fatalf("expected no region")
	}
}

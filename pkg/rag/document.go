package rag

import (
	"fmt"
	"strings"
)

// Document is one retrieved context chunk.
type Document struct {
	Content         string
	RelevanceReason string
}

// BuildContext renders documents as labeled blocks:
//
//	[D1]
//	<content>
//
// Labels are 1-based and contiguous over the given (already filtered)
// set, so the generator and validator always see the same numbering.
func BuildContext(docs []Document) string {
	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("[D%d]\n%s", i+1, doc.Content)
	}
	return strings.Join(blocks, "\n\n")
}

package topics

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a professor preparing a course outline from a document.

Rules:
- Identify the 3-7 major topics the document actually covers. Do not invent topics that are not in the text.
- Topic names should be short and human-readable, suitable as menu entries.
- For each topic, write a 1-2 sentence summary and list its most important key points.
- For each topic, list the individually teachable concepts it contains, ordered from foundational to advanced. A concept should be small enough to teach in a few questions.
- Write a 2-3 sentence summary of the whole document.
- Base everything strictly on the provided text.`

// maxInputChars bounds how much document text is sent for extraction.
// Roughly 100k tokens at 4 chars per token.
const maxInputChars = 400_000

// buildUserMessage constructs the extraction request from the document text.
// Oversized documents are truncated at the cap, never rejected.
func buildUserMessage(docName, fullText string) string {
	text := fullText
	truncated := false
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
		truncated = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Document: %s\n\n", docName)
	b.WriteString(text)
	if truncated {
		b.WriteString("\n\n[Document truncated for length.]")
	}
	return b.String()
}

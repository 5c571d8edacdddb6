package qa

import (
	"fmt"
	"strings"

	"github.com/abhisek/socratic/internal/retriever"
)

// RefusalPhrase is what the model is instructed to say when the retrieved
// material does not contain the answer.
const RefusalPhrase = "I cannot find this answer in the material provided"

const systemPrompt = `You are a study assistant answering questions strictly from provided course material.

Rules:
- Answer using ONLY the material between the CONTEXT markers. Do not use outside knowledge.
- If the material does not contain the answer, reply exactly: "` + RefusalPhrase + `"
- Be concise and direct. Quote or paraphrase the material where helpful.
- Never invent facts, formulas, or definitions that are not in the material.`

// buildUserMessage joins the retrieved chunks into a context block and
// appends the question.
func buildUserMessage(query string, chunks []retriever.ScoredChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}

	var b strings.Builder
	b.WriteString("CONTEXT:\n")
	b.WriteString(strings.Join(parts, "\n\n---\n\n"))
	fmt.Fprintf(&b, "\nEND CONTEXT\n\nQuestion: %s", query)
	return b.String()
}

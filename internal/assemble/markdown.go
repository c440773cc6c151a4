package assemble

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HasStructure reports whether md parses to markdown with at least one
// heading. Provider output that fails this check is treated as structureless
// and replaced by the fallback formatter.
func HasStructure(md string) bool {
	if strings.TrimSpace(md) == "" {
		return false
	}
	source := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// FallbackMarkdown gives merged OCR text minimal markdown structure without
// any external service: the first short line becomes the document heading,
// later short standalone lines become section headings, and blank-line
// separated runs stay paragraphs.
func FallbackMarkdown(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	var (
		b         strings.Builder
		paragraph []string
		wroteH1   bool
	)

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		b.WriteString(strings.Join(paragraph, " "))
		b.WriteString("\n\n")
		paragraph = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if looksLikeHeading(trimmed) {
			flush()
			if wroteH1 {
				b.WriteString("## " + trimmed + "\n\n")
			} else {
				b.WriteString("# " + trimmed + "\n\n")
				wroteH1 = true
			}
			continue
		}
		paragraph = append(paragraph, trimmed)
	}
	flush()

	out := strings.TrimSpace(b.String())
	if out == "" {
		return ""
	}
	return out + "\n"
}

// looksLikeHeading flags short lines without terminal punctuation, the usual
// shape of chapter titles in OCR output.
func looksLikeHeading(line string) bool {
	if len(line) > 60 || strings.ContainsAny(string(line[len(line)-1]), ".,;:!?") {
		return false
	}
	words := strings.Fields(line)
	return len(words) <= 8
}

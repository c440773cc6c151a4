package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/souljazzfunk/ocr-kindle/internal/providers"
)

// DefaultTitle names the artifacts when no usable title survives sanitization.
const DefaultTitle = "OCR_Output"

const titlePromptFormat = `Based on this text content, generate a concise but descriptive filename for this document.

%s

Rules:
- Extract the main title or topic in the original language
- Use only safe filename characters (letters, numbers, spaces, hyphens, underscores)
- If it's a book, use the book title
- If it's an article, use the main topic
- Return ONLY the filename without extension or explanations

Filename:`

const markdownPromptFormat = `Convert the following extracted text into well-formatted Markdown:

%s

Rules:
- Use proper heading levels (# ## ###) for titles and chapter names
- Format paragraphs with proper line breaks
- Use **bold** for emphasis where appropriate
- Use > blockquotes for important quotes or highlighted text
- Maintain the original text structure and flow
- Do not add any content that wasn't in the original text
- Return only the Markdown-formatted content without explanations

Markdown:`

// Document is the assembled output for one merged OCR text.
type Document struct {
	Title    string
	Text     string
	Markdown string
}

// Assembler turns merged OCR text into a titled, markdown-formatted document.
// The provider is optional for both steps: when it fails, the structural
// fallback still produces a usable document rather than failing the pipeline.
type Assembler struct {
	Provider    providers.Provider
	Model       string
	Temperature float64
}

// Assemble derives a title and markdown body from merged text.
func (a *Assembler) Assemble(ctx context.Context, merged string) Document {
	return Document{
		Title:    a.title(ctx, merged),
		Text:     merged,
		Markdown: a.markdown(ctx, merged),
	}
}

func (a *Assembler) title(ctx context.Context, text string) string {
	if a.Provider != nil {
		excerpt := text
		if len(excerpt) > 1000 {
			excerpt = excerpt[:1000]
		}
		raw, err := a.Provider.Generate(ctx, providers.Request{
			Prompt:      fmt.Sprintf(titlePromptFormat, excerpt),
			Model:       a.Model,
			Temperature: a.Temperature,
		})
		if err == nil {
			if title := SanitizeTitle(firstLine(raw)); title != "" {
				return title
			}
		} else {
			slog.Warn("Title generation failed, deriving from content", "err", err)
		}
	}
	return DeriveTitle(text)
}

func (a *Assembler) markdown(ctx context.Context, text string) string {
	if a.Provider != nil {
		body, err := a.Provider.Generate(ctx, providers.Request{
			Prompt:      fmt.Sprintf(markdownPromptFormat, text),
			Model:       a.Model,
			Temperature: a.Temperature,
		})
		if err == nil && HasStructure(body) {
			return strings.TrimSpace(body) + "\n"
		}
		if err != nil {
			slog.Warn("Markdown conversion failed, using structural fallback", "err", err)
		} else {
			slog.Warn("Markdown conversion returned structureless output, using fallback")
		}
	}
	return FallbackMarkdown(text)
}

// DeriveTitle takes a title candidate from the leading content of text,
// sanitized for filesystem use with the default as last resort.
func DeriveTitle(text string) string {
	const maxTitleLen = 48
	candidate := firstLine(text)
	if runes := []rune(candidate); len(runes) > maxTitleLen {
		candidate = string(runes[:maxTitleLen])
	}
	if title := SanitizeTitle(candidate); title != "" {
		return title
	}
	return DefaultTitle
}

// SanitizeTitle keeps letters and digits in any script plus hyphens and
// underscores; whitespace becomes underscores and everything else is dropped.
// Titles arrive in the document's original language, so filtering is by rune
// class, not ASCII range.
func SanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// ArtifactName returns the artifact filename for the given extension.
func ArtifactName(title, ext string) string {
	return title + ext
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

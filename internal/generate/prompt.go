package generate

import (
	"fmt"
	"strings"
)

// Content types accepted by the prompt builders.
const (
	ContentVideo = "video"
	ContentPDF   = "pdf"
	ContentStudy = "study"
)

// NormalizeContentType maps unknown content types to video.
func NormalizeContentType(ct string) string {
	switch ct {
	case ContentPDF, ContentStudy:
		return ct
	default:
		return ContentVideo
	}
}

const promptRules = `Formatting rules:
- Organize the notes as markdown sections, each starting with a "## " heading line
- Each section covers exactly one topic from the source material
- Keep each section body under %d words
- Write full prose, not bare bullet lists
- Do not invent content that is not in the source
- Respond with ONLY the markdown notes, no preamble or commentary`

// BuildNotesPrompt returns the generation prompt for a whole transcript
// that fits in a single chunk.
func BuildNotesPrompt(chunk, contentType string, maxWords int) string {
	var sb strings.Builder
	sb.WriteString(sourceDescription(contentType))
	sb.WriteString(" Produce structured study notes from it.\n\n")
	fmt.Fprintf(&sb, promptRules, maxWords)
	sb.WriteString("\n\n---\n")
	sb.WriteString(chunk)
	return sb.String()
}

// BuildSequentialPrompt returns the prompt for one part of a transcript that
// was split into multiple chunks, so the generator keeps the notes flowing
// across parts instead of restarting each time.
func BuildSequentialPrompt(chunk, contentType string, part, total, maxWords int) string {
	var sb strings.Builder
	sb.WriteString(sourceDescription(contentType))
	fmt.Fprintf(&sb, " This is part %d of %d sequential parts of the same material. ", part, total)
	sb.WriteString("Produce structured study notes for this part only; do not summarize earlier parts or anticipate later ones, and do not add an introduction or conclusion for the whole document.\n\n")
	fmt.Fprintf(&sb, promptRules, maxWords)
	sb.WriteString("\n\n---\n")
	sb.WriteString(chunk)
	return sb.String()
}

func sourceDescription(contentType string) string {
	switch contentType {
	case ContentPDF:
		return "The following text was extracted from a PDF document."
	case ContentStudy:
		return "The following text is study material."
	default:
		return "The following text is a transcription of a video."
	}
}

// DocumentHeader returns the heading block placed above combined multi-part
// notes.
func DocumentHeader(contentType string) string {
	switch contentType {
	case ContentPDF:
		return "# Complete Document Notes\n\n" +
			"*This content has been automatically generated from the PDF document and organized into structured learning notes.*\n\n---\n\n"
	case ContentStudy:
		return "# Study Notes\n\n" +
			"*This content has been automatically generated and organized into structured learning notes.*\n\n---\n\n"
	default:
		return "# Complete Course Notes\n\n" +
			"*This content has been automatically generated from the video transcription and organized into structured learning notes.*\n\n---\n\n"
	}
}

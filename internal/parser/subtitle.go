package parser

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SubtitleParser handles SRT and WebVTT subtitle files, the common formats
// for video transcripts. Cue text is joined into paragraphs; a long silence
// between cues starts a new paragraph.
type SubtitleParser struct{}

// Gaps of at least this length between cues are treated as topic breaks.
const paragraphGap = 5 * time.Second

// Matches "00:01:02,345 --> 00:01:04,000" (SRT) and the dot-separated VTT
// variant, with optional VTT cue settings after the end time.
var cueTimingRe = regexp.MustCompile(
	`^(\d{1,2}:)?\d{2}:\d{2}[.,]\d{3}\s+-->\s+((\d{1,2}:)?\d{2}:\d{2}[.,]\d{3})`)

var subtitleTagRe = regexp.MustCompile(`</?[^>]+>`)

func (p *SubtitleParser) Parse(r io.Reader, filename string) (*Transcript, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder
	var lastEnd time.Duration
	haveEnd := false
	inCue := false

	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			inCue = false
		case line == "WEBVTT" || strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE"):
			inCue = false
		case cueTimingRe.MatchString(line):
			m := cueTimingRe.FindStringSubmatch(line)
			start, okStart := parseCueTime(strings.Fields(line)[0])
			end, okEnd := parseCueTime(m[2])
			if okStart && haveEnd && start-lastEnd >= paragraphGap {
				flush()
			}
			if okEnd {
				lastEnd = end
				haveEnd = true
			}
			inCue = true
		case !inCue && isCueIndex(line):
			// Numeric cue counter before the timing line.
		default:
			if !inCue {
				// Stray text outside any cue (VTT headers etc).
				continue
			}
			text := strings.TrimSpace(subtitleTagRe.ReplaceAllString(line, ""))
			if text == "" {
				continue
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(text)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Transcript{
		Title: titleFromFilename(filename),
		Text:  joinParagraphs(paragraphs),
	}, nil
}

func isCueIndex(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}

// parseCueTime reads "hh:mm:ss,mmm" or "mm:ss.mmm" into a duration.
func parseCueTime(s string) (time.Duration, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ":")

	var h, m int
	var sec float64
	var err error
	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		parts = parts[1:]
		fallthrough
	case 2:
		if m, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if sec, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second)), true
}

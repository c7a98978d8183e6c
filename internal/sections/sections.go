// Package sections splits the model's structured response into its
// bracket-delimited sections.
package sections

import (
	"regexp"
	"strings"
)

// The literal section markers of the structured response. They must be
// reproduced exactly: stored conversation history round-trips through them.
const (
	MarkerSpeech     = "[문동권 사장님 말씀]"
	MarkerReferences = "[참고 기사]"
	MarkerGuide      = "[신입사원 가이드]"
)

// labelRemnantRegex matches a leading bracket-delimited label left over after
// splitting on a marker.
var labelRemnantRegex = regexp.MustCompile(`^\s*\[.*?\]\s*`)

// Extract returns the content between startMarker and endMarker. The second
// return value is false when startMarker is absent; a missing marker is not
// an error. An empty endMarker means "to the end of the text".
func Extract(text, startMarker, endMarker string) (string, bool) {
	idx := strings.Index(text, startMarker)
	if idx < 0 {
		return "", false
	}

	content := text[idx+len(startMarker):]
	if endMarker != "" {
		if end := strings.Index(content, endMarker); end >= 0 {
			content = content[:end]
		}
	}

	content = labelRemnantRegex.ReplaceAllString(content, "")
	return strings.TrimSpace(content), true
}

// Result holds the three sections of a structured analysis response. A nil
// field means the marker was absent from the text.
type Result struct {
	Speech     *string // Spoken-quote section
	References *string // References section
	Guide      *string // Guidance section
}

// Split extracts all three sections independently: a missing section never
// prevents extraction of the others.
func Split(text string) Result {
	var result Result
	if s, ok := Extract(text, MarkerSpeech, MarkerReferences); ok {
		result.Speech = &s
	}
	if s, ok := Extract(text, MarkerReferences, MarkerGuide); ok {
		result.References = &s
	}
	if s, ok := Extract(text, MarkerGuide, ""); ok {
		result.Guide = &s
	}
	return result
}

// SpokenText returns the text submitted for speech synthesis: everything in
// the spoken-quote section, cut at the references marker.
func SpokenText(text string) (string, bool) {
	return Extract(text, MarkerSpeech, MarkerReferences)
}

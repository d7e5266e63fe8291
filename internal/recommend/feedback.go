package recommend

import (
	"regexp"
	"strings"
)

// feedbackPattern matches the FEEDBACK: marker, optionally prefixed with a
// markdown header, anywhere in the text.
var feedbackPattern = regexp.MustCompile(`(?i)(?:###\s*)?FEEDBACK:`)

// extractFeedback pulls the advisor's free-text commentary out of the
// response. In order of preference: everything after an explicit FEEDBACK:
// marker; else the trailing prose two lines after the last recommendation
// line (skipping the blank separator); else empty.
func extractFeedback(rawText string, lines []string) string {
	if loc := feedbackPattern.FindStringIndex(rawText); loc != nil {
		return strings.TrimSpace(rawText[loc[1]:])
	}

	lastRec := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") &&
			(strings.Contains(trimmed, labelAction) || strings.Contains(trimmed, labelTicker)) {
			lastRec = i
		}
	}

	if lastRec >= 0 && len(lines) > lastRec+2 {
		return strings.TrimSpace(strings.Join(lines[lastRec+2:], "\n"))
	}

	return ""
}

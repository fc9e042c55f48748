package extract

import (
	"regexp"
	"strings"
)

// Source identifies where a job posting was pasted from. The shaping
// applied before scoring depends on it.
type Source string

const (
	SourceRaw      Source = "raw"
	SourceWhatsApp Source = "whatsapp"
	SourceEmail    Source = "email"
	SourceURL      Source = "url"
)

var (
	// WhatsApp export lines look like "[12/05/24, 10:30 AM] +91 98765 43210: ..."
	whatsappHeaderRe = regexp.MustCompile(`(?m)^\[?\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}(?:\s?[AP]M)?\]?\s*(?:[^:\n]{0,40}:)?\s*`)
	forwardMarkerRe  = regexp.MustCompile(`(?mi)^-{0,3}\s*forwarded message\s*-{0,3}$`)
	emailHeaderRe    = regexp.MustCompile(`(?mi)^(from|to|cc|bcc|date|subject|reply-to|sent)\s*:.*$`)
	quotePrefixRe    = regexp.MustCompile(`(?m)^>+\s?`)
	blankRunRe       = regexp.MustCompile(`\n{3,}`)
	spaceRunRe       = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize shapes pasted job posting text for scoring. WhatsApp
// timestamps, forward markers, email headers and quote prefixes carry
// no signal and would pollute line-level spam scoring, so they are
// stripped before anything else sees the text.
func Normalize(raw string, source Source) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	switch source {
	case SourceWhatsApp:
		text = whatsappHeaderRe.ReplaceAllString(text, "")
		text = forwardMarkerRe.ReplaceAllString(text, "")
	case SourceEmail:
		text = forwardMarkerRe.ReplaceAllString(text, "")
		text = emailHeaderRe.ReplaceAllString(text, "")
		text = quotePrefixRe.ReplaceAllString(text, "")
	}

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

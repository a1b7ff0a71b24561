// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"
)

const (
	maxSummaryLen   = 500
	maxHeaderLines  = 10
	maxNameTokens   = 4
	linkedInProfile = "linkedin.com/in/"
)

var (
	emailRe         = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe         = regexp.MustCompile(`(\+?1?[-. \t]?)?\(?[0-9]{3}\)?[-. \t]?[0-9]{3}[-. \t]?[0-9]{4}`)
	linkedInURLRe   = regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9-]+)`)
	linkedInLabelRe = regexp.MustCompile(`(?i)linkedin:?[ \t]*([a-zA-Z0-9-]+)`)
	nameRe          = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)

	portfolioRe = regexp.MustCompile(`(?i)\b(?:portfolio|website|github)[ \t]*:?[ \t]*((?:https?://)?(?:[a-z0-9-]+\.)+[a-z]{2,}(?:/[^\s,|]*)?)`)

	// locationStrictRe matches "City, ST" with an optional ZIP code.
	locationStrictRe = regexp.MustCompile(`[A-Za-z][A-Za-z .'-]*,[ \t]*[A-Z]{2}\b(?:[ \t]+\d{5})?`)
	// locationLooseRe matches "Words, Words[, Words]" and will accept any
	// comma-separated phrase, so it only runs over the header region.
	locationLooseRe = regexp.MustCompile(`[A-Za-z][A-Za-z .'-]*,[ \t]*[A-Za-z][A-Za-z .'-]*(?:,[ \t]*[A-Za-z][A-Za-z .'-]*)?`)
)

// ExtractEmail returns the first email address in text, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first North American style phone number in
// text with its original formatting, or "".
func ExtractPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// ExtractLinkedIn returns the LinkedIn handle in text as
// "linkedin.com/in/<handle>", whether it appears as a profile URL or as a
// "LinkedIn: <handle>" label. A profile URL anywhere in text wins over a
// label.
func ExtractLinkedIn(text string) string {
	m := linkedInURLRe.FindStringSubmatch(text)
	if m == nil {
		m = linkedInLabelRe.FindStringSubmatch(text)
	}
	if m == nil {
		return ""
	}
	return linkedInProfile + m[1]
}

// ExtractName treats the first non-blank line as the candidate's name when
// it contains only letters and spaces, is 2 to 50 characters long, and has
// at most four words. Hyphens, apostrophes, and accented letters are not
// accepted.
func ExtractName(text string) string {
	lines := nonBlankLines(Normalize(text))
	if len(lines) == 0 {
		return ""
	}
	first := lines[0]
	if !nameRe.MatchString(first) || len(strings.Fields(first)) > maxNameTokens {
		return ""
	}
	return first
}

// ExtractSummary returns the text under a summary, profile, objective, or
// about-me heading up to the next heading or blank line, truncated to 500
// characters.
func ExtractSummary(text string) string {
	body, ok := sectionBody(Normalize(text), catSummary)
	if !ok {
		return ""
	}
	return truncateRunes(strings.TrimSpace(body), maxSummaryLen)
}

// ExtractLocation returns a "City, ST [ZIP]" location, falling back to a
// generic comma-separated place name. Only the header region (the lines
// before the first section heading, at most ten) is searched.
func ExtractLocation(text string) string {
	header := headerRegion(Normalize(text))
	if m := locationStrictRe.FindString(header); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(locationLooseRe.FindString(header))
}

// ExtractPortfolio returns the URL after a portfolio, website, or GitHub
// label, or "".
func ExtractPortfolio(text string) string {
	m := portfolioRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], ".;:)")
}

// headerRegion returns the contact block at the top of a resume.
func headerRegion(text string) string {
	lines := nonBlankLines(text[:firstHeadingOffset(text)])
	if len(lines) > maxHeaderLines {
		lines = lines[:maxHeaderLines]
	}
	return strings.Join(lines, "\n")
}

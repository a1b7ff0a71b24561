// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// category identifies a resume section recognized by its heading.
type category int

const (
	catSummary category = iota
	catSkills
	catEducation
	catExperience
	catProjects
	catCertifications
	// catTerminal covers headings that end other sections but carry no
	// builder of their own.
	catTerminal
)

// headingSynonyms lists, per category, the keywords that open a section.
// Longer phrases come first so alternation prefers them.
var headingSynonyms = map[category]string{
	catSummary:        `summary|profile|objective|about me`,
	catSkills:         `technical skills|core competencies|skills`,
	catEducation:      `education|academic|qualifications`,
	catExperience:     `professional experience|work experience|work history|experience|employment`,
	catProjects:       `personal projects|projects|portfolio`,
	catCertifications: `certifications?|certificates?|licen[cs]es?`,
	catTerminal:       `references|languages|interests|awards|publications|volunteer(?:ing)?`,
}

// headingRes holds one compiled heading matcher per category. A heading
// line starts with optional markup, at most one qualifier word ("Relevant
// Experience"), the keyword, and an optional "& Other" continuation, and
// then ends or continues after a colon.
var headingRes = func() map[category]*regexp.Regexp {
	res := make(map[category]*regexp.Regexp, len(headingSynonyms))
	for cat, syn := range headingSynonyms {
		res[cat] = regexp.MustCompile(`(?im)^[ \t#*]*(?:[a-z]+[ \t]+)?(?:` + syn +
			`)\b[ \t]*(?:(?:&|and|/)[ \t]*[a-z]+(?:[ \t]+[a-z]+)?[ \t]*)?(?::|$)`)
	}
	return res
}()

// allCategories fixes an iteration order over headingRes.
var allCategories = []category{
	catSummary, catSkills, catEducation, catExperience,
	catProjects, catCertifications, catTerminal,
}

// Normalize converts raw extracted text into the form the extractors
// expect: LF line endings, NFC, non-breaking spaces as spaces, and no
// trailing whitespace on any line. It is idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = norm.NFC.String(text)

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\f\v")
	}
	return strings.Join(lines, "\n")
}

// sectionBody returns the text under the heading of cat, or false when no
// such heading exists. A standalone heading line is preferred over an
// inline one, and an inline keyword followed only by a link
// ("Portfolio: https://...") is a contact label, not a heading.
//
// The body ends at the next heading of another category, at a blank-line
// run (two blank lines for entry sections, one for summary and skills), or
// at the end of text.
func sectionBody(text string, cat category) (string, bool) {
	start, ok := findHeading(text, cat)
	if !ok {
		return "", false
	}

	// Skip the colons and whitespace after the keyword, as a heading may be
	// followed by blank lines before its content.
	bodyStart := start
	for bodyStart < len(text) && strings.ContainsRune(": \t\n", rune(text[bodyStart])) {
		bodyStart++
	}
	atLineStart := bodyStart == 0 || text[bodyStart-1] == '\n'
	rest := text[bodyStart:]

	end := len(rest)
	terminator := "\n\n\n"
	if cat == catSummary || cat == catSkills {
		terminator = "\n\n"
	}
	if i := strings.Index(rest, terminator); i >= 0 {
		end = i
	}

	for _, other := range allCategories {
		if other == cat {
			continue
		}
		for _, loc := range headingMatches(rest, other) {
			if loc[0] == 0 && !atLineStart {
				continue
			}
			if loc[0] < end {
				end = loc[0]
			}
			break
		}
	}

	return rest[:end], true
}

// findHeading returns the offset just past the keyword of the chosen
// heading of cat.
func findHeading(text string, cat category) (int, bool) {
	matches := headingMatches(text, cat)
	if len(matches) == 0 {
		return 0, false
	}
	for _, m := range matches {
		if isStandalone(text, m[1]) {
			return m[1], true
		}
	}
	return matches[0][1], true
}

// headingMatches returns the heading matches of cat in text, leaving out
// inline link labels such as "Portfolio: https://jane.dev".
func headingMatches(text string, cat category) [][]int {
	var out [][]int
	for _, m := range headingRes[cat].FindAllStringIndex(text, -1) {
		if !isLinkLabel(text, m[1]) {
			out = append(out, m)
		}
	}
	return out
}

// linkValueRe matches a line remainder that is a single URL or a bare
// domain on a common top-level domain. "Node.js" is not a link.
var linkValueRe = regexp.MustCompile(`(?i)^(?:https?://\S+|www\.\S+|(?:[a-z0-9-]+\.)+(?:com|org|net|io|dev|me|co|app|ai|info|edu|us|uk)(?:/\S*)?)$`)

// isLinkLabel reports whether the rest of the line after offset is a link.
func isLinkLabel(text string, offset int) bool {
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}
	return linkValueRe.MatchString(strings.TrimSpace(text[offset : offset+lineEnd]))
}

// isStandalone reports whether nothing but whitespace follows offset on
// its line.
func isStandalone(text string, offset int) bool {
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}
	return strings.TrimSpace(text[offset:offset+lineEnd]) == ""
}

// firstHeadingOffset returns the offset of the earliest heading line of
// any category, or len(text) when there is none.
func firstHeadingOffset(text string) int {
	first := len(text)
	for _, cat := range allCategories {
		if locs := headingMatches(text, cat); len(locs) > 0 && locs[0][0] < first {
			first = locs[0][0]
		}
	}
	return first
}

// nonBlankLines splits s into trimmed lines, dropping blank ones.
func nonBlankLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

var (
	numberedBulletRe = regexp.MustCompile(`^\d{1,2}\.\s+`)
	markerBulletRe   = regexp.MustCompile(`^[•·\-*]+\s*`)
)

// isBulletLine reports whether line starts with a bullet marker or a
// "N." enumeration.
func isBulletLine(line string) bool {
	return markerBulletRe.MatchString(line) || numberedBulletRe.MatchString(line)
}

// stripBullet removes a leading bullet marker or enumeration.
func stripBullet(line string) string {
	if loc := numberedBulletRe.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return strings.TrimSpace(markerBulletRe.ReplaceAllString(line, ""))
}

// removeFirst deletes the leftmost match of re from s.
func removeFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

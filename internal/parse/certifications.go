// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/resume-engine/pkg/types"
)

const (
	minCertLineLen = 5
	minCertNameLen = 3
)

var (
	// trailingDateRe matches a trailing "2021", "March 2021", or "(2021)"
	// together with the separators before it.
	trailingDateRe = regexp.MustCompile(`(?i)[\s,(–—-]*\b((?:` + monthPattern + `\s+)?(?:19|20)\d{2})\)?\.?$`)

	// issuerRe matches the first issuer clause: "by X", "issued by X",
	// "from X", or a dash separated "— X". A plain hyphen needs spaces on
	// both sides so hyphenated names survive.
	issuerRe = regexp.MustCompile(`(?i)(?:\s+(?:issued by|by|from)\s+|\s*[—–]\s*|\s+-\s+)(.+)$`)
)

// ExtractCertifications treats every line of the certifications section
// as one entry. The trailing date is cut first, then the issuer clause;
// when the line had no trailing date, a date left at the end of the name
// is cut last. Lines whose remaining name is three characters or shorter
// are dropped.
func ExtractCertifications(text string) []types.Certification {
	entries := []types.Certification{}

	body, ok := sectionBody(Normalize(text), catCertifications)
	if !ok {
		return entries
	}

	for _, line := range nonBlankLines(body) {
		if cert, ok := parseCertification(line); ok {
			entries = append(entries, cert)
		}
	}
	return entries
}

func parseCertification(line string) (types.Certification, bool) {
	if runeLen(line) < minCertLineLen {
		return types.Certification{}, false
	}

	var cert types.Certification
	rest := stripBullet(line)

	if url := urlRe.FindString(rest); url != "" {
		cert.Link = strings.TrimRight(url, ").,;")
		rest = strings.TrimSpace(strings.Replace(rest, url, "", 1))
	}

	rest, cert.Date = cutTrailingDate(rest)

	if m := issuerRe.FindStringSubmatchIndex(rest); m != nil {
		cert.Issuer = strings.Trim(rest[m[2]:m[3]], " \t,;.")
		rest = rest[:m[0]]
	}

	if cert.Date == "" {
		rest, cert.Date = cutTrailingDate(rest)
	}

	cert.Name = strings.Trim(rest, " \t,;:|-–—")
	if runeLen(cert.Name) <= minCertNameLen {
		return types.Certification{}, false
	}
	cert.ID = newID()
	return cert, true
}

// cutTrailingDate splits a trailing date token off s.
func cutTrailingDate(s string) (rest, date string) {
	m := trailingDateRe.FindStringSubmatchIndex(s)
	if m == nil {
		return s, ""
	}
	return strings.TrimSpace(s[:m[0]]), s[m[2]:m[3]]
}

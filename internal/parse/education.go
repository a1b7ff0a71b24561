// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/resume-engine/pkg/types"
)

var (
	// degreeRe keeps the closing period of an abbreviation ("B.S.").
	degreeRe = regexp.MustCompile(`(?i)\b(?:Bachelor(?:'s)?|Master(?:'s)?|Ph\.?D|Doctor(?:ate)?|Associate(?:'s)?|B\.?S|B\.?A|M\.?S|M\.?A|M\.?B\.?A|B\.?E|B\.?Tech|M\.?Tech)\b\.?`)

	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy)\b`)

	// yearRangeRe matches "2016 - 2020", "2018 to present", "2019–current".
	yearRangeRe = regexp.MustCompile(`(?i)(\d{4})\s*(?:-|–|—|\bto\b)\s*(\d{4}|present|current)\b`)

	yearRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaRe      = regexp.MustCompile(`(?i)GPA[:\s]*(\d+\.?\d*)`)
	fieldSepRe = regexp.MustCompile(`(?i)\s+in\s+`)

	// trailingYearRe matches a graduation year closing a degree line:
	// ", 2019" or " (2019)".
	trailingYearRe = regexp.MustCompile(`[\s,(–—-]*\b(?:19|20)\d{2}\)?$`)
)

// ExtractEducation segments the education section into entries. A degree
// or institution keyword opens an entry; an entry with both an institution
// and a degree closes when the following line opens another one. The last
// open entry is kept when it has an institution or a degree.
func ExtractEducation(text string) []types.Education {
	entries := []types.Education{}

	body, ok := sectionBody(Normalize(text), catEducation)
	if !ok {
		return entries
	}
	lines := nonBlankLines(body)

	var cur *types.Education
	for i, line := range lines {
		degree := degreeRe.FindString(line)
		isInstitution := institutionRe.MatchString(line)

		if degree != "" || isInstitution {
			if cur == nil {
				cur = &types.Education{ID: newID()}
			}
			if isInstitution && cur.Institution == "" {
				cur.Institution = strings.TrimSpace(removeFirst(yearRangeRe, line))
			}
			if degree != "" {
				assignDegree(cur, line, degree)
			}
		}

		if cur != nil {
			assignEducationDates(cur, line)
			if m := gpaRe.FindStringSubmatch(line); m != nil {
				cur.GPA = m[1]
			}
		}

		if cur != nil && cur.Institution != "" && cur.Degree != "" && i+1 < len(lines) && opensEducation(lines[i+1]) {
			entries = append(entries, *cur)
			cur = nil
		}
	}

	if cur != nil && (cur.Institution != "" || cur.Degree != "") {
		entries = append(entries, *cur)
	}
	return entries
}

// opensEducation reports whether line carries a degree or institution keyword.
func opensEducation(line string) bool {
	return degreeRe.MatchString(line) || institutionRe.MatchString(line)
}

// assignDegree splits "Degree in Field" lines; otherwise it keeps the
// matched keyword as the degree and the remainder of the line as the field.
func assignDegree(e *types.Education, line, degree string) {
	if parts := fieldSepRe.Split(line, -1); len(parts) > 1 {
		e.Degree = strings.TrimSpace(parts[0])
		e.Field = fieldText(parts[1])
		return
	}

	e.Degree = degree
	rest := fieldText(strings.Replace(line, degree, "", 1))
	if rest != "" && e.Field == "" {
		e.Field = rest
	}
}

// fieldText strips dates and separators from the field part of a degree
// line.
func fieldText(s string) string {
	s = strings.TrimSpace(removeFirst(yearRangeRe, s))
	s = strings.TrimLeft(trailingYearRe.ReplaceAllString(s, ""), " \t,.")
	return strings.TrimRight(s, " \t,")
}

// assignEducationDates prefers an explicit range, then any two years on the
// line; a lone year fills only an empty end date.
func assignEducationDates(e *types.Education, line string) {
	if m := yearRangeRe.FindStringSubmatch(line); m != nil {
		e.StartDate = m[1]
		e.EndDate = endDate(m[2])
		return
	}
	years := yearRe.FindAllString(line, -1)
	switch {
	case len(years) >= 2:
		e.StartDate, e.EndDate = years[0], years[1]
	case len(years) == 1 && e.EndDate == "":
		e.EndDate = years[0]
	}
}

// isOngoing reports whether a range end token means the range is open.
func isOngoing(end string) bool {
	end = strings.ToLower(end)
	return end == "present" || end == "current"
}

// endDate canonicalizes an open range end to types.PresentMarker.
func endDate(end string) string {
	if isOngoing(end) {
		return types.PresentMarker
	}
	return end
}

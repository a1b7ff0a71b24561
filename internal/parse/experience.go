// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/resume-engine/pkg/types"
)

// monthPattern matches an English month name or abbreviation.
const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

const (
	// minAchievementLen is the length an achievement must exceed to be kept.
	minAchievementLen = 10
	// minDescriptionLen is the length a plain line must exceed to count as
	// a description rather than a heading line.
	minDescriptionLen = 50
	// headerLineWindow is how many leading section lines may open an entry
	// on a job title alone.
	headerLineWindow = 3
)

var (
	// dateRangeRe matches "Jan 2020 - Present", "2018 – 2021", "March 2019 to Dec 2020".
	dateRangeRe = regexp.MustCompile(`(?i)((?:\b` + monthPattern + `\s+)?\d{4})\s*(?:-|–|—|\bto\b)\s*((?:\b` + monthPattern + `\s+)?\d{4}|present|current)\b`)

	titleRe   = regexp.MustCompile(`(?i)\b(?:manager|engineer|developer|analyst|designer|director|coordinator|specialist|consultant|lead|senior|junior|intern|associate|executive|administrator|architect|scientist)\b`)
	companyRe = regexp.MustCompile(`(?i)\b(?:inc|llc|ltd|corp|company|technologies|solutions|services|group)\b`)

	cityStateLineRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*,[ \t]*[A-Z]{2}(?:[ \t]+\d{5})?$`)
)

// ExtractWorkExperience segments the experience section into job entries.
//
// An entry opens on a date range next to a title or company keyword, on a
// title within the first three lines of the section, or on a company or
// date when no entry is open. Any other line, including a later title or
// company line without a date, belongs to the open entry. Bullet lines
// become achievements; the first long plain line after position and
// company are known becomes the description.
func ExtractWorkExperience(text string) []types.WorkExperience {
	entries := []types.WorkExperience{}

	body, ok := sectionBody(Normalize(text), catExperience)
	if !ok {
		return entries
	}
	lines := nonBlankLines(body)

	var cur *types.WorkExperience
	flush := func() {
		if cur != nil && (cur.Company != "" || cur.Position != "") {
			entries = append(entries, *cur)
		}
	}

	for i, line := range lines {
		bullet := isBulletLine(line)

		var dates []string
		hasTitle, isCompany := false, false
		if !bullet {
			dates = dateRangeRe.FindStringSubmatch(line)
			hasTitle = titleRe.MatchString(line)
			isCompany = companyRe.MatchString(line)
		}

		if opensExperience(cur != nil, i, dates != nil, hasTitle, isCompany) {
			flush()
			cur = &types.WorkExperience{ID: newID(), Achievements: []string{}}
		}
		if cur == nil {
			continue
		}

		if dates != nil {
			cur.StartDate = dates[1]
			cur.Current = isOngoing(dates[2])
			cur.EndDate = endDate(dates[2])
		}

		switch {
		case bullet:
			if a := stripBullet(line); runeLen(a) > minAchievementLen {
				cur.Achievements = append(cur.Achievements, a)
			}
		case hasTitle && cur.Position == "":
			cur.Position = stripDateRange(line)
		case isCompany && cur.Company == "":
			cur.Company = stripDateRange(line)
		case cur.Location == "" && cityStateLineRe.MatchString(line):
			cur.Location = line
		case cur.Position == "" && !hasTitle && !isCompany && dates == nil:
			cur.Position = line
		case cur.Position != "" && cur.Company != "" && dates == nil &&
			runeLen(line) > minDescriptionLen && cur.Description == "":
			cur.Description = line
		}
	}

	flush()
	return entries
}

// opensExperience is the boundary trigger for work entries. i is the line
// index within the section.
func opensExperience(open bool, i int, hasDate, hasTitle, isCompany bool) bool {
	switch {
	case hasDate && (hasTitle || isCompany):
		return true
	case hasTitle && i < headerLineWindow:
		return true
	}
	return !open && (hasDate || isCompany)
}

// stripDateRange removes the date range from a heading line along with
// separators left dangling at either end.
func stripDateRange(line string) string {
	return strings.Trim(removeFirst(dateRangeRe, line), " \t,|·•-–—")
}

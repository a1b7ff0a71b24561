// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/resume-engine/pkg/types"
)

// maxProjectNameLen bounds the length of a line that may name a project.
const maxProjectNameLen = 60

var (
	urlRe = regexp.MustCompile(`https?://[^\s]+`)

	// techLabelRe matches a technology label at the start of a line
	// ("Built with React") or followed by a colon ("Stack using: Go").
	techLabelRe = regexp.MustCompile(`(?i)(?:^[•·\-*\s]*(?:technologies|tech stack|built with|using)\b[:\s]*|\b(?:technologies|tech stack|built with|using)\s*:\s*)(.+)`)

	techSepRe = regexp.MustCompile(`[,•·]`)
)

// ExtractProjects segments the projects section into entries. A short
// plain line opens a project when none is open; the open project closes
// when the next line would open one. URLs set the link, technology labels
// set the technologies, and bullets or long lines extend the description.
func ExtractProjects(text string) []types.Project {
	entries := []types.Project{}

	body, ok := sectionBody(Normalize(text), catProjects)
	if !ok {
		return entries
	}
	lines := nonBlankLines(body)

	var cur *types.Project
	for i, line := range lines {
		if cur == nil {
			if namesProject(line) {
				cur = &types.Project{ID: newID(), Name: line, Technologies: []string{}}
			}
			continue
		}

		if url := urlRe.FindString(line); url != "" {
			cur.Link = strings.TrimRight(url, ").,;")
		}
		if m := techLabelRe.FindStringSubmatch(line); m != nil {
			cur.Technologies = splitTechnologies(m[1])
		}
		if isBulletLine(line) || runeLen(line) > minDescriptionLen {
			desc := stripBullet(line)
			if cur.Description == "" {
				cur.Description = desc
			} else {
				cur.Description += " " + desc
			}
		}

		if i+1 < len(lines) && namesProject(lines[i+1]) {
			entries = append(entries, *cur)
			cur = nil
		}
	}

	if cur != nil && cur.Name != "" {
		entries = append(entries, *cur)
	}
	return entries
}

// namesProject reports whether line looks like a project name: short, not
// a bullet, and carrying neither a URL nor a technology label.
func namesProject(line string) bool {
	return runeLen(line) < maxProjectNameLen &&
		!isBulletLine(line) &&
		!urlRe.MatchString(line) &&
		!techLabelRe.MatchString(line)
}

func splitTechnologies(s string) []string {
	techs := []string{}
	for _, t := range techSepRe.Split(s, -1) {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

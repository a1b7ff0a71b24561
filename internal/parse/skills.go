package parse

import (
	"regexp"
	"strings"
)

const (
	maxSkills   = 20
	maxSkillLen = 50
)

var skillSepRe = regexp.MustCompile(`[,•·\n|]`)

// ExtractSkills splits the skills section on commas, bullets, pipes, and
// newlines. Items are trimmed, shorter than 50 characters, and capped at
// 20. Duplicates are kept.
func ExtractSkills(text string) []string {
	skills := []string{}

	body, ok := sectionBody(Normalize(text), catSkills)
	if !ok {
		return skills
	}

	for _, s := range skillSepRe.Split(body, -1) {
		s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-*"))
		if s == "" || runeLen(s) >= maxSkillLen {
			continue
		}
		skills = append(skills, s)
		if len(skills) == maxSkills {
			break
		}
	}
	return skills
}

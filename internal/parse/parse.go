// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse segments plain resume text into a structured resume.
//
// Field extractors each return one scalar field; section segmenters find a
// headed section and walk its lines once with a single open-entry
// accumulator. Nothing in this package fails: a field or section that
// cannot be found comes back empty. All functions are pure apart from the
// entry identifiers, which are fresh on every call.
package parse

import (
	"github.com/google/uuid"

	"github.com/pdiddy/resume-engine/pkg/types"
)

// newID returns a fresh entry identifier. Tests may replace it.
var newID = uuid.NewString

// ParseText extracts every field and section from text. Each member of the
// result is defined; missing information is an empty string or an empty
// slice.
func ParseText(text string) types.PartialResume {
	text = Normalize(text)

	fullName := ExtractName(text)
	email := ExtractEmail(text)
	phone := ExtractPhone(text)
	linkedIn := ExtractLinkedIn(text)
	portfolio := ExtractPortfolio(text)
	location := ExtractLocation(text)
	summary := ExtractSummary(text)

	return types.PartialResume{
		PersonalInfo: &types.PartialPersonalInfo{
			FullName:  &fullName,
			Email:     &email,
			Phone:     &phone,
			LinkedIn:  &linkedIn,
			Portfolio: &portfolio,
			Location:  &location,
			Summary:   &summary,
		},
		Skills:         ExtractSkills(text),
		Education:      ExtractEducation(text),
		WorkExperience: ExtractWorkExperience(text),
		Projects:       ExtractProjects(text),
		Certifications: ExtractCertifications(text),
	}
}

// Parse is ParseText merged with DefaultResume.
func Parse(text string) types.Resume {
	return MergeWithDefaults(ParseText(text), types.DefaultResume())
}

// MergeWithDefaults builds a complete resume from partial, taking each
// member from partial when it is defined and from defaults otherwise.
// Slices are copied, and any slice still nil afterwards (including nested
// achievement and technology lists) is replaced by an empty one, so the
// result never has an undefined member.
func MergeWithDefaults(partial types.PartialResume, defaults types.Resume) types.Resume {
	out := types.Resume{
		PersonalInfo:   mergePersonalInfo(partial.PersonalInfo, defaults.PersonalInfo),
		Skills:         pick(partial.Skills, defaults.Skills),
		Education:      pick(partial.Education, defaults.Education),
		WorkExperience: pick(partial.WorkExperience, defaults.WorkExperience),
		Projects:       pick(partial.Projects, defaults.Projects),
		Certifications: pick(partial.Certifications, defaults.Certifications),
	}

	for i := range out.WorkExperience {
		out.WorkExperience[i].Achievements = nonNil(clone(out.WorkExperience[i].Achievements))
	}
	for i := range out.Projects {
		out.Projects[i].Technologies = nonNil(clone(out.Projects[i].Technologies))
	}
	return out
}

func mergePersonalInfo(partial *types.PartialPersonalInfo, defaults types.PersonalInfo) types.PersonalInfo {
	if partial == nil {
		return defaults
	}
	return types.PersonalInfo{
		FullName:  orDefault(partial.FullName, defaults.FullName),
		Email:     orDefault(partial.Email, defaults.Email),
		Phone:     orDefault(partial.Phone, defaults.Phone),
		LinkedIn:  orDefault(partial.LinkedIn, defaults.LinkedIn),
		Portfolio: orDefault(partial.Portfolio, defaults.Portfolio),
		Location:  orDefault(partial.Location, defaults.Location),
		Summary:   orDefault(partial.Summary, defaults.Summary),
	}
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// pick returns a copy of partial when it is defined, else a copy of def,
// never nil.
func pick[T any](partial, def []T) []T {
	if partial != nil {
		return nonNil(clone(partial))
	}
	return nonNil(clone(def))
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

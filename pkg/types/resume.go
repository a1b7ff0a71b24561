// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the structured resume document shared by the parser,
// the importer, the resume library, and downstream consumers.
package types

import "time"

// PersonalInfo holds the scalar contact and profile fields of a resume.
// An empty string means the field is absent.
type PersonalInfo struct {
	FullName  string `json:"fullName" yaml:"fullName"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	Portfolio string `json:"portfolio" yaml:"portfolio"`
	Location  string `json:"location" yaml:"location"`
	Summary   string `json:"summary" yaml:"summary"`
}

// Education is one degree or institution entry.
type Education struct {
	ID          string `json:"id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`

	// GPA is optional; empty means not stated.
	GPA string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

// PresentMarker is the EndDate of an ongoing role or program.
const PresentMarker = "Present"

// WorkExperience is one job entry. When Current is true, EndDate is
// always PresentMarker.
type WorkExperience struct {
	ID           string   `json:"id" yaml:"id"`
	Company      string   `json:"company" yaml:"company"`
	Position     string   `json:"position" yaml:"position"`
	Location     string   `json:"location" yaml:"location"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      string   `json:"endDate" yaml:"endDate"`
	Current      bool     `json:"current" yaml:"current"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

// Project is one project entry.
type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// Certification is one certification or license entry.
type Certification struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Date   string `json:"date" yaml:"date"`
	Link   string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Resume is the complete structured document. After merging with
// DefaultResume every string is defined and every slice is non-nil.
type Resume struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo" yaml:"personalInfo"`
	Skills         []string         `json:"skills" yaml:"skills"`
	Education      []Education      `json:"education" yaml:"education"`
	WorkExperience []WorkExperience `json:"workExperience" yaml:"workExperience"`
	Projects       []Project        `json:"projects" yaml:"projects"`
	Certifications []Certification  `json:"certifications" yaml:"certifications"`
}

// PartialPersonalInfo is PersonalInfo with every field optional.
// A nil pointer means the field is undefined.
type PartialPersonalInfo struct {
	FullName  *string `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	Email     *string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Portfolio *string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
	Location  *string `json:"location,omitempty" yaml:"location,omitempty"`
	Summary   *string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// PartialResume is a Resume with any subset of members defined. A nil
// slice or nil PersonalInfo means the member is undefined; an empty
// non-nil slice is a defined, empty member.
type PartialResume struct {
	PersonalInfo   *PartialPersonalInfo `json:"personalInfo,omitempty" yaml:"personalInfo,omitempty"`
	Skills         []string             `json:"skills,omitempty" yaml:"skills,omitempty"`
	Education      []Education          `json:"education,omitempty" yaml:"education,omitempty"`
	WorkExperience []WorkExperience     `json:"workExperience,omitempty" yaml:"workExperience,omitempty"`
	Projects       []Project            `json:"projects,omitempty" yaml:"projects,omitempty"`
	Certifications []Certification      `json:"certifications,omitempty" yaml:"certifications,omitempty"`
}

// DefaultResume returns a new complete document with every string empty
// and every slice empty but non-nil. Each call returns fresh slices, so
// callers may not mutate a shared default.
func DefaultResume() Resume {
	return Resume{
		Skills:         []string{},
		Education:      []Education{},
		WorkExperience: []WorkExperience{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}
}

// TemplateType names a visual resume layout used by the template renderers.
type TemplateType string

const (
	TemplateModern     TemplateType = "modern"
	TemplateClassic    TemplateType = "classic"
	TemplateCreative   TemplateType = "creative"
	TemplateMinimalist TemplateType = "minimalist"
	TemplateExecutive  TemplateType = "executive"
	TemplateTechnical  TemplateType = "technical"
	TemplateElegant    TemplateType = "elegant"
	TemplateCompact    TemplateType = "compact"
)

// DefaultTemplate is the layout selected for new resumes.
const DefaultTemplate = TemplateModern

// Templates lists every known layout in display order.
var Templates = []TemplateType{
	TemplateModern, TemplateClassic, TemplateCreative, TemplateMinimalist,
	TemplateExecutive, TemplateTechnical, TemplateElegant, TemplateCompact,
}

// Valid reports whether t is a known layout.
func (t TemplateType) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// SavedResume is a resume stored in the local library.
type SavedResume struct {
	// ID is the library identifier, assigned on first save.
	ID string `json:"id" yaml:"id"`

	// Name is the user-facing label shown in the library listing.
	Name string `json:"name" yaml:"name"`

	// Template is the layout selected for this resume.
	Template TemplateType `json:"template" yaml:"template"`

	// SavedAt is the time of the most recent save.
	SavedAt time.Time `json:"savedAt" yaml:"savedAt"`

	// Data is the resume document.
	Data Resume `json:"data" yaml:"data"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resume-engine/internal/parse"
	"github.com/pdiddy/resume-engine/pkg/types"
)

const sample = `Jane Doe
jane@example.com | 555-123-4567

EXPERIENCE
Senior Engineer
Acme Corp
Jan 2020 - Present
• Led the storage migration across three regions

EDUCATION
BS Computer Science
State University
2012 - 2016

PROJECTS
Parser
Technologies: Go

CERTIFICATIONS
CKA by CNCF 2022
`

func TestResume_ParsedDocumentsConform(t *testing.T) {
	for _, text := range []string{"", sample, "garbage\x00text"} {
		assert.NoError(t, Resume(parse.Parse(text)), "input %q", text)
	}
}

func TestResume_Violations(t *testing.T) {
	valid := parse.Parse(sample)
	require.NoError(t, Resume(valid))

	tests := []struct {
		name   string
		mutate func(r *types.Resume)
		want   string
	}{
		{"nil skills", func(r *types.Resume) { r.Skills = nil }, "skills"},
		{"nil achievements", func(r *types.Resume) { r.WorkExperience[0].Achievements = nil }, "workExperience.0.achievements"},
		{"empty id", func(r *types.Resume) { r.Projects[0].ID = "" }, "projects.0.id"},
		{"current without Present", func(r *types.Resume) { r.WorkExperience[0].EndDate = "2023" }, "workExperience.0"},
		{"empty skill", func(r *types.Resume) { r.Skills = []string{""} }, "skills.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Merging an empty partial copies valid.
			r := parse.MergeWithDefaults(types.PartialResume{}, valid)
			tt.mutate(&r)

			err := Resume(r)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Violations)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDocument(t *testing.T) {
	data, err := json.Marshal(types.DefaultResume())
	require.NoError(t, err)
	assert.NoError(t, Document(data))

	err = Document([]byte(`{"personalInfo": {}, "skills": [], "extra": 1}`))
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "education")

	assert.Error(t, Document([]byte(`{not json`)))
}

func TestSchema(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(Schema(), &doc))
	assert.Equal(t, "Resume", doc["title"])
}

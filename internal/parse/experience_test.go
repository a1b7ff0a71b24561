// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resume-engine/pkg/types"
)

func TestExtractWorkExperience_PresentIsCaseInsensitive(t *testing.T) {
	for _, end := range []string{"Present", "PRESENT", "present", "Current"} {
		got := ExtractWorkExperience("EXPERIENCE\nEngineer\nAcme Corp\nJan 2020 - " + end)

		require.Len(t, got, 1, end)
		assert.True(t, got[0].Current, end)
		assert.Equal(t, types.PresentMarker, got[0].EndDate, end)
		assert.Equal(t, "Jan 2020", got[0].StartDate, end)
	}
}

func TestExtractWorkExperience_Cases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.WorkExperience
	}{
		{
			name: "month names and location",
			text: "WORK EXPERIENCE\nData Analyst\nGlobex Group\nMarch 2019 to Dec 2020\nSeattle, WA",
			want: []types.WorkExperience{{
				Position:     "Data Analyst",
				Company:      "Globex Group",
				Location:     "Seattle, WA",
				StartDate:    "March 2019",
				EndDate:      "Dec 2020",
				Achievements: []string{},
			}},
		},
		{
			name: "long plain line is the description",
			text: "EXPERIENCE\nSoftware Engineer\nInitech LLC\n2015 - 2019\nResponsible for maintaining the internal reporting platform and dashboards",
			want: []types.WorkExperience{{
				Position:     "Software Engineer",
				Company:      "Initech LLC",
				StartDate:    "2015",
				EndDate:      "2019",
				Description:  "Responsible for maintaining the internal reporting platform and dashboards",
				Achievements: []string{},
			}},
		},
		{
			name: "short bullets dropped",
			text: "EXPERIENCE\nDeveloper\nHooli Inc\n2018 - 2020\n• Fixed bugs\n- Rebuilt the search indexer in Go",
			want: []types.WorkExperience{{
				Position:     "Developer",
				Company:      "Hooli Inc",
				StartDate:    "2018",
				EndDate:      "2020",
				Achievements: []string{"Rebuilt the search indexer in Go"},
			}},
		},
		{
			name: "date on a title line opens the next entry",
			text: "EXPERIENCE\nEngineer\nAcme Corp\n2019 - 2021\nLead Engineer, 2021 - 2023\nUmbrella Group",
			want: []types.WorkExperience{
				{Position: "Engineer", Company: "Acme Corp", StartDate: "2019", EndDate: "2021", Achievements: []string{}},
				{Position: "Lead Engineer", Company: "Umbrella Group", StartDate: "2021", EndDate: "2023", Achievements: []string{}},
			},
		},
		{
			name: "title within three lines after a company opens another",
			text: "EXPERIENCE\nAcme Inc\nSoftware Engineer\nJan 2020 - Present",
			want: []types.WorkExperience{
				{Company: "Acme Inc", Achievements: []string{}},
				{Position: "Software Engineer", StartDate: "Jan 2020", EndDate: types.PresentMarker, Current: true, Achievements: []string{}},
			},
		},
		{
			name: "later title without a date stays in the open entry",
			text: "EXPERIENCE\nSenior Engineer\nAcme Inc\nJan 2020 - Present\n- Shipped the new billing pipeline\nSoftware Developer\nBeta LLC\n2018 - 2019",
			want: []types.WorkExperience{{
				Position:     "Senior Engineer",
				Company:      "Acme Inc",
				StartDate:    "2018",
				EndDate:      "2019",
				Achievements: []string{"Shipped the new billing pipeline"},
			}},
		},
		{
			name: "no section",
			text: "I have experience with Go",
			want: []types.WorkExperience{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWorkExperience(tt.text)
			for i := range got {
				assert.NotEmpty(t, got[i].ID)
				got[i].ID = ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpensExperience(t *testing.T) {
	tests := []struct {
		name                       string
		open                       bool
		i                          int
		hasDate, hasTitle, company bool
		want                       bool
	}{
		{"date with title", true, 7, true, true, false, true},
		{"date with company", true, 7, true, false, true, true},
		{"title in first three lines", true, 2, false, true, false, true},
		{"title after three lines", true, 3, false, true, false, false},
		{"company with entry open", true, 1, false, false, true, false},
		{"company with no entry", false, 5, false, false, true, true},
		{"bare date with no entry", false, 5, true, false, false, true},
		{"bare date with entry open", true, 5, true, false, false, false},
		{"plain line", false, 0, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opensExperience(tt.open, tt.i, tt.hasDate, tt.hasTitle, tt.company))
		})
	}
}

func TestStripDateRange(t *testing.T) {
	assert.Equal(t, "Senior Engineer", stripDateRange("Senior Engineer | Jan 2020 - Present"))
	assert.Equal(t, "Acme Inc", stripDateRange("Acme Inc, 2018 – 2021"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resume-engine/pkg/types"
)

func TestExtractProjects_TwoProjects(t *testing.T) {
	text := `PROJECTS
Weather Dashboard
Built with React, D3
https://weather.example.com
- Visualizes forecasts for any city on an interactive map
Chess Engine
- Bitboard move generator written in Rust with alpha-beta search`

	got := ExtractProjects(text)
	require.Len(t, got, 2)

	assert.Equal(t, "Weather Dashboard", got[0].Name)
	assert.Equal(t, []string{"React", "D3"}, got[0].Technologies)
	assert.Equal(t, "https://weather.example.com", got[0].Link)
	assert.Equal(t, "Visualizes forecasts for any city on an interactive map", got[0].Description)

	assert.Equal(t, "Chess Engine", got[1].Name)
	assert.Equal(t, []string{}, got[1].Technologies)
	assert.Equal(t, "Bitboard move generator written in Rust with alpha-beta search", got[1].Description)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestExtractProjects_Cases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.Project
	}{
		{
			name: "technology separators",
			text: "PROJECTS\nCache Proxy\nTechnologies: Go • gRPC · Redis",
			want: []types.Project{{Name: "Cache Proxy", Technologies: []string{"Go", "gRPC", "Redis"}}},
		},
		{
			name: "description lines join",
			text: "Personal Projects\nTracker\n• Logs runs\n• Plots weekly mileage",
			want: []types.Project{{Name: "Tracker", Description: "Logs runs Plots weekly mileage", Technologies: []string{}}},
		},
		{
			name: "link punctuation trimmed",
			text: "PROJECTS\nBlog\nSource (https://github.com/jane/blog).",
			want: []types.Project{{Name: "Blog", Link: "https://github.com/jane/blog", Technologies: []string{}}},
		},
		{
			// A short line directly after a project name does not look ahead,
			// so the next name is absorbed into the open project.
			name: "consecutive name lines",
			text: "PROJECTS\nAlpha\nBeta\n• Description text for the first project",
			want: []types.Project{{Name: "Alpha", Description: "Description text for the first project", Technologies: []string{}}},
		},
		{
			name: "bullet cannot open a project",
			text: "PROJECTS\n• orphan bullet line",
			want: []types.Project{},
		},
		{
			name: "no section",
			text: "Jane Doe",
			want: []types.Project{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractProjects(tt.text)
			for i := range got {
				got[i].ID = ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

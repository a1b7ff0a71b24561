package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"comma list", "SKILLS\nGo, Python, SQL", []string{"Go", "Python", "SQL"}},
		{"mixed separators", "SKILLS\nGo • Python | SQL\n- Docker\n* Kubernetes", []string{"Go", "Python", "SQL", "Docker", "Kubernetes"}},
		{"inline heading", "Technical Skills: Go, Rust", []string{"Go", "Rust"}},
		{"duplicates kept", "Skills\nGo, Go", []string{"Go", "Go"}},
		{"stops at blank line", "SKILLS\nGo\n\nReferences available", []string{"Go"}},
		{"no section", "Jane Doe\nGo, Rust", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.text))
		})
	}
}

func TestExtractSkills_Limits(t *testing.T) {
	var items []string
	for i := 1; i <= 25; i++ {
		items = append(items, fmt.Sprintf("skill%d", i))
	}
	got := ExtractSkills("SKILLS\n" + strings.Join(items, ", "))
	assert.Len(t, got, 20)
	assert.Equal(t, "skill1", got[0])
	assert.Equal(t, "skill20", got[19])

	long := strings.Repeat("x", 50)
	almost := strings.Repeat("y", 49)
	got = ExtractSkills("SKILLS\nGo, " + long + ", " + almost)
	assert.Equal(t, []string{"Go", almost}, got)
}

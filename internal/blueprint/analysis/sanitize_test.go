package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\r\n{\"a\":1}\r\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}```", `{"a":1}`},
		{"bom and space", "\ufeff  {\"a\":1}  \n", `{"a":1}`},
		{"fence only", "```json\n```", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestValidateIdea(t *testing.T) {
	got, err := ValidateIdea("  build a drone  ")
	require.NoError(t, err)
	assert.Equal(t, "build a drone", got)

	_, err = ValidateIdea(" \n\t ")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = ValidateIdea(strings.Repeat("é", MaxIdeaLength))
	assert.NoError(t, err)

	_, err = ValidateIdea(strings.Repeat("a", MaxIdeaLength+1))
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	assert.Contains(t, domain.UserMessage(err), "2001")
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Untitled Project", DeriveTitle("   "))
	assert.Equal(t, "Short idea", DeriveTitle("Short\n idea"))

	long := DeriveTitle(strings.Repeat("word ", 30))
	assert.True(t, strings.HasSuffix(long, "…"))
	assert.LessOrEqual(t, len([]rune(long)), 61)
	assert.NotContains(t, long, "  ")
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "Analyze this project idea and generate a complete blueprint:\n\nA drone", UserPrompt("A drone"))
	assert.Contains(t, SectionSystemPrompt("Risks", "Sync conflicts"), "Section: Risks")
}

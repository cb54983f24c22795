package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{"single token", "Project for {client}", map[string]string{"client": "Acme"}, "Project for Acme"},
		{"unmatched left intact", "Hi {x}", map[string]string{}, "Hi {x}"},
		{"nil vars", "Hi {x}", nil, "Hi {x}"},
		{"all occurrences", "{a}-{a}-{a}", map[string]string{"a": "1"}, "1-1-1"},
		{"case sensitive", "{Client} {client}", map[string]string{"client": "acme"}, "{Client} acme"},
		{"multiple keys", "{who} onboarding for {client}", map[string]string{"who": "Ana", "client": "Acme"}, "Ana onboarding for Acme"},
		{"partial match", "{client}{clientele}", map[string]string{"client": "X"}, "X{clientele}"},
		{"no braces", "plain text", map[string]string{"a": "b"}, "plain text"},
		{"empty value", "[{x}]", map[string]string{"x": ""}, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.vars))
		})
	}
}

func TestSubstitute_ValuesAreNotRescanned(t *testing.T) {
	assert.Equal(t, "{b}", Substitute("{a}", map[string]string{"a": "{b}", "b": "X"}))
	assert.Equal(t, "{a}", Substitute("{b}", map[string]string{"b": "{a}", "a": "X"}))
	assert.Equal(t, "{y}-{x}", Substitute("{x}-{y}", map[string]string{"x": "{y}", "y": "{x}"}))
}

func TestSubstitute_KeyWithSpaces(t *testing.T) {
	assert.Equal(t, "Kickoff Acme", Substitute("Kickoff {client name}", map[string]string{"client name": "Acme"}))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"client", "week"}, Placeholders("{client} week {week}: {client}"))
	assert.Nil(t, Placeholders("nothing here"))
	assert.Nil(t, Placeholders("{ spaced } {}"))
}

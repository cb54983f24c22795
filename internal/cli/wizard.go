package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/taskforge/internal/cli/formatter"
)

// taskforgeHuhTheme matches huh forms to the formatter palette.
func taskforgeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptVariables shows one input per placeholder key. Blank answers are
// allowed and leave the placeholder empty.
func promptVariables(keys []string) (map[string]string, error) {
	values := make([]string, len(keys))
	fields := make([]huh.Field, 0, len(keys))
	for i, k := range keys {
		fields = append(fields, huh.NewInput().
			Title(k).
			Description(fmt.Sprintf("Value for {%s}", k)).
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(taskforgeHuhTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("reading template variables: %w", err)
	}

	out := make(map[string]string, len(keys))
	for i, k := range keys {
		out[k] = strings.TrimSpace(values[i])
	}
	return out, nil
}

// Package markdown renders the cleaned conversation as a Markdown document,
// an optional second artifact alongside the HTML output.
package markdown

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// TurnFragment is one cleaned turn ready for Markdown rendering.
type TurnFragment struct {
	RoleLabel string // "User" or "Assistant"
	HTML      string
}

// Converter converts cleaned fragments to GitHub-flavored Markdown.
type Converter struct {
	conv *md.Converter
}

// NewConverter creates a Markdown converter.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return &Converter{conv: conv}
}

// Render emits the whole conversation: title heading, then one section per
// turn in original order.
func (c *Converter) Render(title string, turns []TurnFragment) (string, error) {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# " + title + "\n\n")
	}

	for i, turn := range turns {
		body, err := c.conv.ConvertString(turn.HTML)
		if err != nil {
			return "", fmt.Errorf("converting turn %d: %w", i, err)
		}
		sb.WriteString("## " + turn.RoleLabel + "\n\n")
		sb.WriteString(strings.TrimSpace(body))
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

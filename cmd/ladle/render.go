package main

import (
	"github.com/charmbracelet/glamour"

	"github.com/jmorneau/ladle/internal/config"
)

// renderPretty renders a markdown recipe card for the terminal. The glamour
// style comes from config ("auto" picks light or dark from the terminal
// background). Falls back to the plain markdown if the renderer fails, so
// show --format pretty always prints something.
func renderPretty(markdown string, cfg *config.Config) string {
	theme := "auto"
	if cfg != nil && cfg.Theme != "" {
		theme = cfg.Theme
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(80),
	}
	if theme == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

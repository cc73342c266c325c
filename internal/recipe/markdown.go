package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderMarkdown renders a recipe as a markdown card:
// H1 name, a metadata list, then Ingredients and Instructions sections.
// The card round-trips through ParseMarkdown for numeric amounts.
func RenderMarkdown(r *Recipe) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(r.Name)
	sb.WriteString("\n\n")

	if r.Category != "" {
		fmt.Fprintf(&sb, "- Category: %s\n", r.Category)
	}
	fmt.Fprintf(&sb, "- Prep time: %d min\n", r.PrepTime)
	fmt.Fprintf(&sb, "- Cook time: %d min\n", r.CookTime)
	fmt.Fprintf(&sb, "- Servings: %d\n", r.Servings)
	if r.Rating > 0 {
		fmt.Fprintf(&sb, "- Rating: %s\n", r.RatingDisplay())
	}
	if r.Favorite {
		sb.WriteString("- Favorite: yes\n")
	}

	if len(r.Ingredients) > 0 {
		sb.WriteString("\n## Ingredients\n\n")
		for _, ing := range r.Ingredients {
			sb.WriteString("- ")
			sb.WriteString(ingredientLine(ing))
			sb.WriteString("\n")
		}
	}

	if len(r.Instructions) > 0 {
		sb.WriteString("\n## Instructions\n\n")
		for i, step := range r.Instructions {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
	}

	return sb.String()
}

// ingredientLine renders an ingredient as "amount unit item", skipping
// empty parts.
func ingredientLine(ing Ingredient) string {
	parts := make([]string, 0, 3)
	if s := ing.Amount.String(); s != "" {
		parts = append(parts, s)
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	if ing.Item != "" {
		parts = append(parts, ing.Item)
	}
	return strings.Join(parts, " ")
}

// ParseMarkdown parses a markdown recipe card back into a Recipe. The first
// H1 heading becomes the name (required); list items before the first H2
// are metadata "key: value" lines; lists under an "Ingredients" heading are
// parsed with ParseIngredient; lists under "Instructions" become steps.
// Unknown metadata keys and other block types are ignored.
func ParseMarkdown(src string) (*Recipe, error) {
	source := []byte(src)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	r := &Recipe{Servings: 1}
	section := ""

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(nodeText(n, source))
			if n.Level == 1 && r.Name == "" {
				r.Name = title
				continue
			}
			section = Normalize(title)
		case *ast.List:
			for li := n.FirstChild(); li != nil; li = li.NextSibling() {
				line := strings.TrimSpace(nodeText(li, source))
				if line == "" {
					continue
				}
				switch section {
				case "ingredients":
					r.Ingredients = append(r.Ingredients, ParseIngredient(line))
				case "instructions":
					r.Instructions = append(r.Instructions, line)
				default:
					parseMetaLine(line, r)
				}
			}
		}
	}

	if r.Name == "" {
		return nil, fmt.Errorf("recipe card must start with a # <name> heading")
	}

	return r, nil
}

// nodeText collects the raw text segments beneath a node.
func nodeText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// parseMetaLine applies one "key: value" metadata line to a recipe.
func parseMetaLine(line string, r *Recipe) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)

	switch Normalize(key) {
	case "category":
		r.Category = value
	case "prep time", "prep":
		r.PrepTime = max(leadingInt(value), 0)
	case "cook time", "cook":
		r.CookTime = max(leadingInt(value), 0)
	case "servings":
		r.Servings = leadingInt(value)
	case "rating":
		r.Rating = clampRating(parseRatingValue(value))
	case "favorite":
		v := Normalize(value)
		r.Favorite = v == "yes" || v == "true"
	}
}

// leadingInt parses the first whitespace-separated field of s as an integer,
// so "10 min" yields 10. Returns 0 when there is none.
func leadingInt(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// parseRatingValue reads a rating rendered as stars ("★★★☆☆") or as a
// number ("4" or "4/5").
func parseRatingValue(s string) int {
	if stars := strings.Count(s, "★"); stars > 0 {
		return stars
	}
	num, _, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0
	}
	return n
}

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jmorneau/ladle/internal/config"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/ops"
	"github.com/jmorneau/ladle/internal/recipe"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "ladle",
		Usage:   "Personal recipe catalog",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(db),
			showCmd(db, cfg),
			listCmd(db),
			searchCmd(db),
			updateCmd(db),
			deleteCmd(db),
			rateCmd(db),
			favoriteCmd(db),
			scaleCmd(db),
			convertCmd(),
			unitsCmd(),
			shoppingCmd(db),
			exportCmd(db, cfg),
			importCmd(db, cfg),
			statsCmd(db, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a recipe from flags or a piped markdown card",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Recipe name"},
			&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient line, e.g. \"2 cups flour\" (repeatable)"},
			&cli.StringSliceFlag{Name: "step", Aliases: []string{"s"}, Usage: "Instruction step (repeatable)"},
			&cli.IntFlag{Name: "prep", Usage: "Prep time in minutes"},
			&cli.IntFlag{Name: "cook", Usage: "Cook time in minutes"},
			&cli.IntFlag{Name: "servings", Usage: "Serving count (default 1)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category, e.g. dinner"},
			&cli.IntFlag{Name: "rating", Usage: "Rating 1-5"},
			&cli.BoolFlag{Name: "favorite", Usage: "Mark as favorite"},
		},
		Action: func(c *cli.Context) error {
			var input ops.AddInput

			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				card, err := recipe.ParseMarkdown(text)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input = ops.AddInput{
					Name:         card.Name,
					Ingredients:  card.Ingredients,
					Instructions: card.Instructions,
					PrepTime:     card.PrepTime,
					CookTime:     card.CookTime,
					Servings:     &card.Servings,
					Category:     card.Category,
					Rating:       card.Rating,
					Favorite:     card.Favorite,
				}
				// An explicit name wins over the card's H1
				if name := nameFromArgs(c); name != "" {
					input.Name = name
				}
			} else {
				input = ops.AddInput{
					Name:         nameFromArgs(c),
					Ingredients:  parseIngredientFlags(c.StringSlice("ingredient")),
					Instructions: c.StringSlice("step"),
					PrepTime:     c.Int("prep"),
					CookTime:     c.Int("cook"),
					Category:     c.String("category"),
					Rating:       c.Int("rating"),
					Favorite:     c.Bool("favorite"),
				}
				if c.IsSet("servings") {
					servings := c.Int("servings")
					input.Servings = &servings
				}
			}

			output, err := ops.Add(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a recipe by name",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Recipe name"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "Output format: json|markdown|pretty"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Get(c.Context, db, ops.GetInput{Name: nameFromArgs(c)})
			if err != nil {
				return outputError(err)
			}

			switch c.String("format") {
			case "json":
				return outputJSON(output)
			case "markdown":
				fmt.Print(recipe.RenderMarkdown(&output.Recipe))
				return nil
			case "pretty":
				fmt.Print(renderPretty(recipe.RenderMarkdown(&output.Recipe), cfg))
				return nil
			default:
				return outputError(errors.NewInvalidRequest("format must be one of: json, markdown, pretty"))
			}
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recipe summaries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
			&cli.BoolFlag{Name: "favorites", Aliases: []string{"f"}, Usage: "Only favorites"},
			&cli.BoolFlag{Name: "top-rated", Usage: "Only rated recipes, best first"},
			&cli.StringFlag{Name: "sort", Usage: "Sort order: name|updated|rating"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Favorites: c.Bool("favorites"),
				TopRated:  c.Bool("top-rated"),
				Sort:      c.String("sort"),
				Limit:     c.Int("limit"),
				Offset:    c.Int("offset"),
			}

			if category := c.String("category"); category != "" {
				input.Category = &category
			}

			output, err := ops.List(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search recipes by name, ingredient, category, or total time",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name substring"},
			&cli.StringFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient substring"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Exact category"},
			&cli.IntFlag{Name: "max-time", Usage: "Maximum total minutes (prep + cook)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SearchInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}

			if name := c.String("name"); name != "" {
				input.Name = &name
			}
			if ingredient := c.String("ingredient"); ingredient != "" {
				input.Ingredient = &ingredient
			}
			if category := c.String("category"); category != "" {
				input.Category = &category
			}
			if c.IsSet("max-time") {
				maxTime := c.Int("max-time")
				input.MaxTime = &maxTime
			}

			output, err := ops.Search(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a recipe (flags or a piped markdown card; unset fields keep their values)",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rename", Usage: "New recipe name"},
			&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Replacement ingredient line (repeatable, replaces all)"},
			&cli.StringSliceFlag{Name: "step", Aliases: []string{"s"}, Usage: "Replacement instruction step (repeatable, replaces all)"},
			&cli.IntFlag{Name: "prep", Usage: "Prep time in minutes"},
			&cli.IntFlag{Name: "cook", Usage: "Cook time in minutes"},
			&cli.IntFlag{Name: "servings", Usage: "Serving count"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category (empty clears)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{Name: c.Args().First()}

			// A piped card replaces the content fields wholesale
			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if text != "" {
					card, err := recipe.ParseMarkdown(text)
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					input.NewName = &card.Name
					input.Ingredients = &card.Ingredients
					input.Instructions = &card.Instructions
					input.PrepTime = &card.PrepTime
					input.CookTime = &card.CookTime
					input.Servings = &card.Servings
					input.Category = &card.Category
				}
			}

			// Flags win over card fields
			if newName := c.String("rename"); newName != "" {
				input.NewName = &newName
			}
			if c.IsSet("ingredient") {
				ingredients := parseIngredientFlags(c.StringSlice("ingredient"))
				input.Ingredients = &ingredients
			}
			if c.IsSet("step") {
				steps := c.StringSlice("step")
				input.Instructions = &steps
			}
			if c.IsSet("prep") {
				prep := c.Int("prep")
				input.PrepTime = &prep
			}
			if c.IsSet("cook") {
				cook := c.Int("cook")
				input.CookTime = &cook
			}
			if c.IsSet("servings") {
				servings := c.Int("servings")
				input.Servings = &servings
			}
			if c.IsSet("category") {
				category := c.String("category")
				input.Category = &category
			}

			output, err := ops.Update(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a recipe by name",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Recipe name"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{Name: nameFromArgs(c)})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// rateCmd creates the rate command.
func rateCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "rate",
		Usage:     "Rate a recipe 0-5 (0 clears the rating)",
		ArgsUsage: "<name> <rating>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: ladle rate <name> <rating>"))
			}
			rating, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return outputError(errors.NewInvalidRequest("rating must be a number"))
			}

			output, err := ops.Rate(c.Context, db, ops.RateInput{
				Name:   c.Args().Get(0),
				Rating: rating,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// favoriteCmd creates the favorite command.
func favoriteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Toggle a recipe's favorite status",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Recipe name"},
			&cli.BoolFlag{Name: "set", Usage: "Set explicitly instead of toggling (--set or --set=false)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FavoriteInput{Name: nameFromArgs(c)}

			if c.IsSet("set") {
				set := c.Bool("set")
				input.Set = &set
			}

			output, err := ops.Favorite(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scaleCmd creates the scale command.
func scaleCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "scale",
		Usage:     "Scale a recipe to a serving count (never persisted)",
		ArgsUsage: "<name> <servings>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: ladle scale <name> <servings>"))
			}
			servings, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return outputError(errors.NewInvalidRequest("servings must be a number"))
			}

			output, err := ops.Scale(c.Context, db, ops.ScaleInput{
				Name:     c.Args().Get(0),
				Servings: servings,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// convertCmd creates the convert command.
func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert an amount between kitchen units",
		ArgsUsage: "<amount> <from> <to>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return outputError(errors.NewInvalidRequest("usage: ladle convert <amount> <from> <to>"))
			}
			amount, err := decimal.NewFromString(c.Args().Get(0))
			if err != nil {
				return outputError(errors.NewInvalidRequest("amount must be a number"))
			}

			output, err := ops.Convert(ops.ConvertInput{
				Amount: amount,
				From:   c.Args().Get(1),
				To:     c.Args().Get(2),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// unitsCmd creates the units command.
func unitsCmd() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List the units the converter understands",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Units())
		},
	}
}

// shoppingCmd creates the shopping command.
func shoppingCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "shopping",
		Usage:     "Build a combined shopping list from recipes",
		ArgsUsage: "<name> [name...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output buckets and found/missing names as JSON"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Shopping(c.Context, db, ops.ShoppingInput{
				Names: c.Args().Slice(),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}

			fmt.Println(output.Text)
			if len(output.Missing) > 0 {
				fmt.Fprintf(os.Stderr, "not found: %s\n", strings.Join(output.Missing, ", "))
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export recipes to a JSON file",
		ArgsUsage: "[name...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.ladle/exports/recipes-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, db, cfg, ops.ExportInput{
				Path:  c.String("path"),
				Names: c.Args().Slice(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import recipes from a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "skip", Usage: "Collision mode: skip|replace|error"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, db, cfg, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog statistics",
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, db, ops.StatsInput{BaseDir: baseDir})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// nameFromArgs returns the recipe name from the first positional argument,
// falling back to the --name flag.
func nameFromArgs(c *cli.Context) string {
	if c.NArg() > 0 {
		return c.Args().First()
	}
	return c.String("name")
}

// parseIngredientFlags parses repeated --ingredient values.
func parseIngredientFlags(lines []string) []recipe.Ingredient {
	if len(lines) == 0 {
		return nil
	}
	ingredients := make([]recipe.Ingredient, 0, len(lines))
	for _, line := range lines {
		ingredients = append(ingredients, recipe.ParseIngredient(line))
	}
	return ingredients
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if ladleErr, ok := err.(*errors.LadleError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", ladleErr.Code, ladleErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

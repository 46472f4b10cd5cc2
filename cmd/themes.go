package cmd

import (
	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/internal/outwriter"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// themesSetup loads just enough configuration to resolve the effective theme
// dictionary, without requiring an area or a Git repository.
func themesSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return err
	}

	themes := schema.DefaultThemes()
	if len(input.Themes) > 0 {
		themes = input.Themes
	}
	if err := contract.ValidateThemes(themes, "themes"); err != nil {
		return err
	}
	cfg.Themes = themes
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return err
	}
	cfg.UseColors = colors
	return nil
}

// themesCmd prints the effective theme dictionary.
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Print the effective theme dictionary.",
	Long: `Show the theme dictionary used to classify commit messages and review
comments, after applying any overrides from the config file.

Each theme is a named keyword group; a record matches a theme when any
keyword occurs in its text, case-insensitively.

Examples:
  # Inspect the dictionary as a table
  guidepost themes

  # Dump it as JSON for tooling
  guidepost themes --output json`,
	PreRunE: themesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteThemes(cfg.Themes, cfg); err != nil {
			contract.LogFatal("Cannot write theme dictionary", err)
		}
	},
}

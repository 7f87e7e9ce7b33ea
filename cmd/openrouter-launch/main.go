package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
	"github.com/truefrontier/openrouter-launch/internal/config"
	"github.com/truefrontier/openrouter-launch/internal/diff"
	"github.com/truefrontier/openrouter-launch/internal/launcher"
	_ "github.com/truefrontier/openrouter-launch/internal/launcher/tools/aider"    // register Aider
	_ "github.com/truefrontier/openrouter-launch/internal/launcher/tools/claude"   // register Claude Code
	_ "github.com/truefrontier/openrouter-launch/internal/launcher/tools/codex"    // register Codex CLI
	_ "github.com/truefrontier/openrouter-launch/internal/launcher/tools/opencode" // register OpenCode
	"github.com/truefrontier/openrouter-launch/internal/loader"
	"github.com/truefrontier/openrouter-launch/internal/pipeline"
	"github.com/truefrontier/openrouter-launch/internal/ui"
)

var version = "1.0.0"

const defaultIntegration = "claude"

var (
	cfgFile string
	verbose bool
	opts    pipeline.Options
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		ui.Errorf("%v", err)
		os.Exit(pipeline.ExitFailure)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "openrouter-launch [integration] [flags] [-- tool args]",
		Short:         "Launch AI coding tools with OpenRouter",
		Long:          "Launch Claude Code, Aider, OpenCode, or Codex CLI against OpenRouter models.",
		Example:       examples(),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, defaultIntegration, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: "+config.DefaultConfigFile()+")")
	pf.StringVarP(&opts.Model, "model", "m", "", "Use specific model (name or alias)")
	pf.StringVarP(&opts.Key, "key", "k", "", "Use API key (overrides saved key)")
	pf.BoolVar(&opts.SaveDefault, "save-default", false, "Save the selected model as default")
	pf.BoolVar(&opts.RefreshModels, "refresh-models", false, "Force refresh model list from API")
	pf.BoolVar(&opts.AllowDataCollection, "allow-data-collection", false, "Allow providers to collect/train on data")
	pf.StringVar(&opts.Sort, "sort", "", "Provider sort order: price|throughput|latency")
	pf.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	for _, name := range launcher.List() {
		l, _ := launcher.Get(name)
		rootCmd.AddCommand(integrationCmd(l))
	}
	rootCmd.AddCommand(
		modelsCmd(),
		aliasesCmd(),
	)

	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + helpFooter())

	return rootCmd
}

func integrationCmd(l launcher.Launcher) *cobra.Command {
	return &cobra.Command{
		Use:     l.Name() + " [flags] [-- tool args]",
		Aliases: l.Aliases(),
		Short:   fmt.Sprintf("Launch %s with OpenRouter", l.DisplayName()),
		Args:    noPositional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(cmd, l.Name(), args)
		},
	}
}

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models with pricing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}

			refresh, _ := cmd.Flags().GetBool("refresh")
			var (
				cat     catalog.Catalog
				src     loader.Source
				changes *diff.ChangeSet
			)
			if refresh || opts.RefreshModels {
				cat, src, changes = p.Refresh(cmd.Context())
			} else {
				cat, src = p.Models(cmd.Context(), false)
			}

			out := cmd.OutOrStdout()
			for _, m := range cat {
				fmt.Fprintf(out, "%-40s %s\n", m.ID, m.Pricing())
			}
			ui.Println()
			ui.Println(ui.Dim.Render(fmt.Sprintf("Total: %d models (source: %s)", len(cat), src)))
			if summary := diff.Render(changes); summary != "" {
				ui.Println()
				ui.Println(ui.Bold.Render("Changes since last refresh:"))
				ui.Println(strings.TrimRight(summary, "\n"))
			}
			return nil
		},
	}

	cmd.Flags().Bool("refresh", false, "Fetch the model list even if the cache is fresh")

	return cmd
}

func aliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List model aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeAliases(cmd, catalog.DefaultResolver().Aliases())
			return nil
		},
	}
}

func writeAliases(cmd *cobra.Command, aliases map[string]string) {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "%-12s -> %s\n", name, aliases[name])
	}
}

func launch(cmd *cobra.Command, integration string, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	o := opts
	o.Integration = integration
	o.Args = passthrough(cmd, args)
	return p.Launch(cmd.Context(), o)
}

func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)
	return pipeline.New(cfg)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.File, err)
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// noPositional only accepts arguments after "--".
func noPositional(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		dash = len(args)
	}
	if dash > 0 {
		return fmt.Errorf("unknown integration: %s (supported: %s)", args[0], strings.Join(launcher.List(), ", "))
	}
	return nil
}

// passthrough returns the arguments after "--".
func passthrough(cmd *cobra.Command, args []string) []string {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil
	}
	return args[dash:]
}

func examples() string {
	return `  openrouter-launch                      # Interactive mode (launches Claude Code)
  openrouter-launch claude -m sonnet     # Use Claude Sonnet with Claude Code
  openrouter-launch aider -m sonnet      # Launch Aider with Claude Sonnet
  openrouter-launch oc                   # Launch OpenCode (short alias)
  openrouter-launch codex -m gpt4o       # Launch Codex CLI with GPT-4o
  openrouter-launch -m flash             # Use Gemini Flash
  openrouter-launch --sort price         # Prefer cheapest providers
  openrouter-launch claude -- --continue # Pass arguments to the tool`
}

func helpFooter() string {
	aliases := catalog.DefaultAliases
	var b strings.Builder
	b.WriteString("\nModel Aliases:\n")
	for _, name := range []string{"sonnet", "opus", "haiku", "flash", "gpt4"} {
		fmt.Fprintf(&b, "  %-9s -> %s\n", name, aliases[name])
	}
	b.WriteString("  (run 'openrouter-launch aliases' for the full list)\n")
	b.WriteString("\nConfig:\n")
	fmt.Fprintf(&b, "  Settings saved to: %s\n", config.DefaultConfigFile())
	b.WriteString("\nFor more information: https://openrouter.ai/docs\n")
	return b.String()
}

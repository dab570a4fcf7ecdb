package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/facet-dev/facet/internal/config"
	"github.com/facet-dev/facet/internal/hooks"
	"github.com/facet-dev/facet/internal/logging"
	"github.com/facet-dev/facet/internal/segment"
	"github.com/facet-dev/facet/internal/statusline"
	"github.com/facet-dev/facet/internal/style"
	"github.com/facet-dev/facet/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Facet - a status line for Claude Code",
	Long: `Facet renders the Claude Code status line. With no subcommand it reads
one JSON status event from stdin and prints one formatted line.

Config precedence (highest to lowest):
  .claude/facet.local.json      Your personal overrides (gitignored)
  .claude/facet.json            Repo config (commit for your team)
  ~/.claude/facet-config.json   Global defaults

Environment overrides (optionally via ~/.claude/facet.env):
  FACET_USAGE_URL, FACET_CACHE_PATH, FACET_CREDENTIALS_PATH,
  FACET_CACHE_TTL, FACET_DEBUG`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStatusLine()
	},
}

// runStatusLine must always print a line and exit 0: a broken status line
// would be rendered by the host as an error banner on every refresh.
func runStatusLine() {
	log := logging.New()
	defer log.Sync()

	style.ForceANSI()

	var event statusline.Event
	if err := json.NewDecoder(os.Stdin).Decode(&event); err != nil {
		log.Debug("failed to decode status event", zap.Error(err))
		event = statusline.Event{}
	}

	cfg := config.Load(event.Workspace.ProjectDir)

	sl := statusline.New(event, cfg, log)
	fmt.Println(sl.Render(context.Background()))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Facet %s\n", version.Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .claude/facet.json in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init("."); err != nil {
			return err
		}
		fmt.Println("Created .claude/facet.json")
		return nil
	},
}

var initGlobalCmd = &cobra.Command{
	Use:   "init-global",
	Short: "Create ~/.claude/facet-config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitGlobal(); err != nil {
			return err
		}
		fmt.Println("Created ~/.claude/facet-config.json")
		return nil
	},
}

var hookCmd = &cobra.Command{
	Use:       "hook <idle|busy|session-end>",
	Short:     "Record session state from a Claude Code hook",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"idle", "busy", "session-end"},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Hooks must not break Claude Code, so a bad payload is treated
		// as an empty one.
		var input hooks.Input
		if err := json.NewDecoder(os.Stdin).Decode(&input); err != nil {
			input = hooks.Input{}
		}

		dir := os.TempDir()
		switch args[0] {
		case "idle":
			return hooks.MarkIdle(dir, input.SessionID)
		case "busy":
			return hooks.MarkBusy(dir, input.SessionID)
		case "session-end":
			return hooks.ClearSession(dir, input.SessionID)
		default:
			return fmt.Errorf("unknown hook type: %s", args[0])
		}
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List external segment scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		discovered, err := segment.Discover(config.SegmentsDir())
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No segment scripts installed (%s)\n", config.SegmentsDir())
				return nil
			}
			return err
		}

		if len(discovered) == 0 {
			fmt.Printf("No segment scripts installed (%s)\n", config.SegmentsDir())
			return nil
		}

		for _, s := range discovered {
			fmt.Printf("%s\t%s\n", s.Name, s.Path)
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(versionCmd, initCmd, initGlobalCmd, hookCmd, segmentsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// blockfall runs the falling-block engine headless: bot-driven games,
// head-to-head matches, replay verification and the score table.
//
// Usage:
//
//	blockfall simulate          - Play one game with the built-in bot
//	blockfall versus            - Pit two bots against each other
//	blockfall replay <id>       - Re-run a stored replay and check it
//	blockfall scores [mode]     - Show the best results
//	blockfall list              - List next-piece randomizers
//	blockfall rules             - Print the effective rules and speed table
//
// Global flags:
//
//	--seed <value>        - RNG seed (0 = pick one from the clock)
//	--db <path>           - Database path (default: ~/.blockfall/blockfall.db)
//	--rules <path>        - Rules YAML
//	--speed <path>        - Speed table YAML
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/field"
	_ "github.com/vovakirdan/blockfall/internal/randomizer" // register randomizers
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagRules      string
	flagSpeed      string
	flagLogLevel   string
	flagRandomizer string
	flagDifficulty string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockfall",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a deterministic falling-block engine",
	Long: `Blockfall runs a frame-exact falling-block puzzle engine without a screen.

Available commands:
  simulate - Play one game with the built-in bot
  versus   - Two bots, one match, same pieces
  replay   - Verify or export a stored replay
  scores   - View the best results
  list     - Show next-piece randomizers
  rules    - Print the effective configuration

Examples:
  blockfall simulate --seed 42 --save
  blockfall versus --frames 20000
  blockfall replay 3f2c... --export run.json
  blockfall scores solo`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		field.SetLogger(logger.WithPrefix("field"))
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/blockfall.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Path to custom speed table YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagRandomizer, "randomizer", "bag", "Next-piece randomizer (see 'blockfall list')")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rulesCmd)
}

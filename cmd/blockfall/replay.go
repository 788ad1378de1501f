package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagReplayFile   string
	flagReplayExport string
	flagReplayList   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "Verify, export or list stored replays",
	Long: `Re-run a recorded game from its seed and input and check that it ends
exactly as recorded. The replay comes from the database by ID, or from a JSON
file written by --export.

Examples:
  blockfall replay --list
  blockfall replay 3f2c0b9e-...
  blockfall replay 3f2c0b9e-... --export run.json
  blockfall replay --file run.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayFile, "file", "", "Read the replay from a JSON file")
	replayCmd.Flags().StringVar(&flagReplayExport, "export", "", "Write the replay to a JSON file")
	replayCmd.Flags().BoolVar(&flagReplayList, "list", false, "List recent replays")
}

func runReplay(cmd *cobra.Command, args []string) {
	if flagReplayList {
		listReplays()
		return
	}

	r := loadReplay(args)

	if flagReplayExport != "" {
		data, err := replay.Encode(r)
		if err != nil {
			exitf("Error: %v\n", err)
		}
		if err := os.WriteFile(flagReplayExport, data, 0o644); err != nil {
			exitf("Error writing %s: %v\n", flagReplayExport, err)
		}
		fmt.Printf("Exported replay %s to %s\n", r.ID, flagReplayExport)
	}

	logger.Info("verifying", "replay", r.ID, "frames", r.Frames(), "seats", len(r.Seats))
	err := replay.Verify(r, replayEngines)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		exitf("Replay %s does not reproduce: %v\n", r.ID, err)
	case err != nil:
		exitf("Error: %v\n", err)
	}

	fmt.Printf("Replay %s reproduces (%d frames, seed %d, %s)\n", r.ID, r.Frames(), r.Seed, r.Randomizer)
	for i, seat := range r.Seats {
		fmt.Printf("  P%d  score %-8d lines %d\n", i+1, seat.Score, seat.Lines)
	}
}

func loadReplay(args []string) *replay.Replay {
	if flagReplayFile != "" {
		data, err := os.ReadFile(flagReplayFile)
		if err != nil {
			exitf("Error reading %s: %v\n", flagReplayFile, err)
		}
		r, err := replay.Decode(data)
		if err != nil {
			exitf("Error: %v\n", err)
		}
		return r
	}
	if len(args) == 0 {
		exitf("Error: give a replay ID or --file\n")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("Error opening database: %v\n", err)
	}
	defer store.Close()

	r, err := store.LoadReplay(args[0])
	if err != nil {
		exitf("Error: %v\n", err)
	}
	if r == nil {
		exitf("Error: no replay %q\n", args[0])
	}
	return r
}

func listReplays() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("Error opening database: %v\n", err)
	}
	defer store.Close()

	infos, err := store.RecentReplays(20)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	if len(infos) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Run 'blockfall simulate --save' to record one.")
		return
	}

	fmt.Printf("  %-36s  %-5s  %-8s  %-12s  %s\n", "ID", "Seats", "Frames", "Randomizer", "Date")
	fmt.Printf("  %-36s  %-5s  %-8s  %-12s  %s\n", "--", "-----", "------", "----------", "----")
	for _, info := range infos {
		fmt.Printf("  %-36s  %-5d  %-8d  %-12s  %s\n", info.ID, info.Seats, info.Frames, info.Randomizer,
			info.CreatedAt.Format("2006-01-02 15:04"))
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/assist"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/piece"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagFrames    int
	flagSave      bool
	flagJSON      bool
	flagShowField bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play one game with the built-in bot",
	Long: `Run a single game headless, driven by the move-search bot, until it tops
out or the frame limit is reached. The input of every frame is recorded, so a
saved run can be checked later with 'blockfall replay'.

Examples:
  blockfall simulate --seed 7
  blockfall simulate --frames 108000 --save
  blockfall simulate --rules ./cascade.yaml --field --json`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	for _, cmd := range []*cobra.Command{simulateCmd, versusCmd} {
		cmd.Flags().IntVar(&flagFrames, "frames", 36000, "Frame limit (60 frames per second of play)")
		cmd.Flags().BoolVar(&flagSave, "save", false, "Store the result and replay in the database")
		cmd.Flags().BoolVar(&flagJSON, "json", false, "Print the summary as JSON")
		cmd.Flags().BoolVar(&flagShowField, "field", false, "Print the final field")
	}
}

// summary is the printable outcome of one seat.
type summary struct {
	Seed     int64          `json:"seed"`
	Phase    string         `json:"phase"`
	Frames   int            `json:"frames"`
	Score    int            `json:"score"`
	Lines    int            `json:"lines"`
	Level    int            `json:"level"`
	Pieces   int            `json:"pieces"`
	MaxCombo int            `json:"max_combo"`
	MaxB2B   int            `json:"max_b2b"`
	Twists   int            `json:"twists"`
	ByPiece  map[string]int `json:"by_piece"`
	ReplayID string         `json:"replay_id,omitempty"`
	Field    string         `json:"field,omitempty"`
}

func summarize(e *engine.Engine, replayID string) summary {
	st := e.Stats()
	s := summary{
		Seed:     e.Seed(),
		Phase:    e.Phase().String(),
		Frames:   st.Frames,
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    e.Level(),
		Pieces:   st.Pieces,
		MaxCombo: st.MaxCombo,
		MaxB2B:   st.MaxB2B,
		Twists:   st.Twists,
		ByPiece:  make(map[string]int, len(st.ByPiece)),
		ReplayID: replayID,
	}
	for id, n := range st.ByPiece {
		s.ByPiece[piece.Name(id)] = n
	}
	if flagShowField {
		s.Field = e.Field().String()
	}
	return s
}

func printSummary(title string, s summary) {
	fmt.Println(title)
	fmt.Printf("  %-10s %d\n", "Seed", s.Seed)
	fmt.Printf("  %-10s %s after %d frames\n", "Ended", s.Phase, s.Frames)
	fmt.Printf("  %-10s %d\n", "Score", s.Score)
	fmt.Printf("  %-10s %d (level %d)\n", "Lines", s.Lines, s.Level)
	fmt.Printf("  %-10s %d\n", "Pieces", s.Pieces)
	fmt.Printf("  %-10s combo %d, b2b %d, twists %d\n", "Best", s.MaxCombo, s.MaxB2B, s.Twists)
	if s.ReplayID != "" {
		fmt.Printf("  %-10s %s\n", "Replay", s.ReplayID)
	}
	if s.Field != "" {
		fmt.Println()
		fmt.Println(s.Field)
	}
}

func runSimulate(cmd *cobra.Command, args []string) {
	s := setupFromFlags()
	seed := resolveSeed()

	worker := assist.NewWorker(assist.Inline(), assist.WithLogger(logger.WithPrefix("assist")))
	e := s.newEngine(seed, worker)
	bot := &assist.Bot{}
	rc := s.recorder(seed, 1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "seed", seed, "randomizer", s.randomName, "frames", flagFrames)
	for f := 0; f < flagFrames && e.Phase() != engine.PhaseGameOver; f++ {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "frame", f)
			break
		}
		in := bot.Input(e)
		rc.Record(core.Player1, in)
		e.Step(in)
	}
	r := rc.Finish(e)

	replayID := ""
	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			exitf("Error opening database: %v\n", err)
		}
		defer store.Close()

		if err := store.SaveReplay(r); err != nil {
			exitf("Error saving replay: %v\n", err)
		}
		res := storage.NewResult("solo", s.randomName, e)
		res.ReplayID = r.ID
		if _, err := store.SaveResult(res); err != nil {
			exitf("Error saving result: %v\n", err)
		}
		replayID = r.ID
		logger.Info("saved", "replay", r.ID)
	}

	sum := summarize(e, replayID)
	if flagJSON {
		printJSON(sum)
		return
	}
	printSummary("Simulation", sum)
}

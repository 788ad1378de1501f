package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/assist"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// stacker keeps a flatter, safer stack than the default weights.
var stacker = assist.Weights{
	Lines:     10,
	Holes:     -100,
	Height:    -8,
	Bumpiness: -8,
	Wells:     -4,
	TSlots:    0,
}

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Pit two bots against each other",
	Long: `Run a head-to-head match between two bots with different search weights.
Both seats get the same seed, so they see the same pieces. The first seat to
top out loses; if nobody does before the frame limit, the higher score wins.

Examples:
  blockfall versus --seed 99
  blockfall versus --frames 20000 --save`,
	Args: cobra.NoArgs,
	Run:  runVersus,
}

func runVersus(cmd *cobra.Command, args []string) {
	s := setupFromFlags()
	seed := resolveSeed()

	w1 := assist.NewWorker(assist.Inline())
	w2 := assist.NewWorker(assist.Inline(), assist.WithWeights(stacker))
	e1, e2 := s.newEngine(seed, w1), s.newEngine(seed, w2)
	rc := s.recorder(seed, 2)

	obs := multiplayer.NewChannelObserver(1024)
	defer obs.Close()
	go func() {
		for {
			select {
			case evt := <-obs.Events():
				logEvent(evt)
			case <-obs.Done():
				return
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := multiplayer.NewVersus(multiplayer.NewMatchID(), e1, e2,
		multiplayer.WithObserver(obs),
		multiplayer.WithLogger(logger.WithPrefix("match")),
	)
	logger.Info("match started", "match", v.ID(), "seed", seed)
	res, err := v.Run(ctx, [2]multiplayer.Controller{&assist.Bot{}, &assist.Bot{}}, uint64(flagFrames), rc.RecordMulti)
	if err != nil {
		logger.Warn("match stopped", "err", err)
	}
	r := rc.Finish(e1, e2)

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			exitf("Error opening database: %v\n", err)
		}
		defer store.Close()

		if err := store.SaveReplay(r); err != nil {
			exitf("Error saving replay: %v\n", err)
		}
		if _, err := store.SaveMatch(res); err != nil {
			exitf("Error saving match: %v\n", err)
		}
		for _, e := range v.Engines() {
			rec := storage.NewResult("versus", s.randomName, e)
			rec.ReplayID = r.ID
			if _, err := store.SaveResult(rec); err != nil {
				exitf("Error saving result: %v\n", err)
			}
		}
		logger.Info("saved", "replay", r.ID)
	}

	replayID := ""
	if flagSave {
		replayID = r.ID
	}
	if flagJSON {
		printJSON(struct {
			Result multiplayer.MatchResult `json:"result"`
			Seats  [2]summary              `json:"seats"`
		}{res, [2]summary{summarize(e1, replayID), summarize(e2, replayID)}})
		return
	}

	fmt.Printf("Match %s: %s after %d frames\n", res.MatchID, res.Reason, res.Frames)
	switch res.Winner {
	case multiplayer.NoWinner:
		fmt.Println("Draw")
	default:
		fmt.Printf("Winner: %s\n", res.Winner)
	}
	fmt.Println()
	printSummary("P1", summarize(e1, replayID))
	fmt.Println()
	printSummary("P2", summarize(e2, replayID))
}

func logEvent(evt multiplayer.Event) {
	switch evt := evt.(type) {
	case multiplayer.LinesEvent:
		logger.Debug("lines", "player", evt.Player, "lines", evt.Lines, "frame", evt.Frame)
	case multiplayer.TopOutEvent:
		logger.Debug("top out", "player", evt.Player, "frame", evt.Frame)
	case multiplayer.MatchEndedEvent:
		logger.Debug("match ended", "winner", evt.Result.Winner)
	}
}

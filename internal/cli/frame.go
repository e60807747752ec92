package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/render"
)

var (
	frameTurn    string
	frameElapsed time.Duration
)

var frameCmd = &cobra.Command{
	Use:   "frame [setup turns]",
	Short: "Print render matrices for one animation frame as JSON",
	Long: `Apply optional setup turns, start one more turn, advance the animation
by --elapsed and print the per-cubie model matrices and colors.

Example:
  cubelet frame "R U" --turn F --elapsed 1s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFrame,
}

func init() {
	frameCmd.Flags().StringVar(&frameTurn, "turn", "", "Turn in flight (e.g. F or R')")
	frameCmd.Flags().DurationVar(&frameElapsed, "elapsed", 0, "Animation time elapsed for the turn in flight")
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	var setup []cubelet.Turn
	if len(args) == 1 {
		if setup, err = cubelet.ParseTurns(args[0]); err != nil {
			return err
		}
	}

	engine, err := newEngine(cfg, logger, cubelet.WithPolicy(cubelet.PolicyQueue), cubelet.WithQueueDepth(len(setup)+1))
	if err != nil {
		return err
	}
	for _, t := range setup {
		if _, err := engine.RequestTurn(t); err != nil {
			return err
		}
	}
	engine.Settle()

	if frameTurn != "" {
		turns, err := cubelet.ParseTurns(frameTurn)
		if err != nil {
			return err
		}
		if len(turns) != 1 {
			return fmt.Errorf("--turn takes a single quarter turn, got %q", frameTurn)
		}
		if _, err := engine.RequestTurn(turns[0]); err != nil {
			return err
		}
		engine.Advance(frameElapsed)
	}

	opts := render.Options{CubeSize: cfg.Render.CubeSize, Gap: cfg.Render.Gap}
	frame := render.Build(engine.Snapshot(), opts)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(frame)
}

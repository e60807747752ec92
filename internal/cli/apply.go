package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

var (
	applySave  bool
	applyNotes string
	applyPlain bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <turns>",
	Short: "Apply turns to a solved cube and print the result",
	Long: `Apply a sequence of turns in standard notation to a solved cube.

Turns run through the engine exactly as interactive turns do, one commit per
quarter turn. Half turns (R2) count as two quarter turns.

Examples:
  cubelet apply "R U R' U'"
  cubelet apply "F R U' R' U' R U R' F'" --save --notes "OLL practice"`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applySave, "save", false, "Journal the turns as a new session")
	applyCmd.Flags().StringVar(&applyNotes, "notes", "", "Notes for the saved session")
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	turns, err := cubelet.ParseTurns(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	// Every turn must be admitted, so queue them all
	engine, err := newEngine(cfg, logger,
		cubelet.WithPolicy(cubelet.PolicyQueue),
		cubelet.WithQueueDepth(len(turns)+1),
	)
	if err != nil {
		return err
	}

	for _, t := range turns {
		if _, err := engine.RequestTurn(t); err != nil {
			return err
		}
	}
	commits := engine.Settle()

	if applySave && len(commits) > 0 {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		journal, err := storage.StartJournal(db, "apply", applyNotes, logger)
		if err != nil {
			return err
		}
		defer journal.Close()

		// Settle committed everything at once; write it in one transaction
		if err := journal.RecordBatch(commits[0].Seq, commits[0].At, turns); err != nil {
			return err
		}
		rememberSession(journal.SessionID(), logger)
		fmt.Printf("Session: %s\n", journal.SessionID())
	}

	state := engine.State()
	fmt.Printf("Turns: %s (%d)\n\n", cubelet.FormatTurns(turns), len(commits))
	if applyPlain {
		fmt.Print(state.String())
	} else {
		fmt.Print(renderNet(state, 0, false))
	}
	fmt.Println()
	if state.IsSolved() {
		fmt.Println(moveStyle.Render("Solved"))
	} else {
		fmt.Println(statusStyle.Render("Not solved"))
	}

	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

var replayPlain bool

var replayCmd = &cobra.Command{
	Use:   "replay [session]",
	Short: "Rebuild a journaled session and print its final state",
	Long: `Replay the committed turns of a session from a solved cube.

The session may be given as a full ID or a unique prefix. Without an
argument the last recorded session is replayed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var ref string
	if len(args) > 0 {
		ref = args[0]
	} else {
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		if sf := openAppState(logger); sf != nil {
			ref = sf.LastSessionID()
		}
		if ref == "" {
			return fmt.Errorf("no session given and no previous session recorded")
		}
	}

	session, err := storage.NewSessionRepository(db).Resolve(ref)
	if err != nil {
		return err
	}

	state, turns, err := storage.Replay(db, session.SessionID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Session " + session.SessionID))
	fmt.Printf("Source: %s   Started: %s   Turns: %d\n",
		session.Source, session.StartedAt.Local().Format("2006-01-02 15:04:05"), len(turns))
	if session.Notes != nil {
		fmt.Printf("Notes: %s\n", *session.Notes)
	}
	if len(turns) > 0 {
		fmt.Println(moveStyle.Render(recentTurns(turns, 60)))
	}
	fmt.Println()

	if replayPlain {
		fmt.Print(state.String())
	} else {
		fmt.Print(renderNet(state, 0, false))
	}
	fmt.Println()
	if state.IsSolved() {
		fmt.Println(moveStyle.Render("Solved"))
	} else {
		fmt.Println(statusStyle.Render(fmt.Sprintf("Not solved (%d of 27 slots changed)", len(state.Displaced(cube.Solved())))))
	}
	return nil
}

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/logging"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

var (
	playQueue     bool
	playNoJournal bool
	playNotes     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube interactively from the keyboard",
	Long: `Start an interactive TUI showing the cube net with animated turns.

Keyboard shortcuts:
  1-6           Select a face (1=Front 2=Back 3=Up 4=Down 5=Left 6=Right)
  Left/Right    Turn the selected face counter-clockwise/clockwise
  f b u d l r   Turn a face clockwise (shift for counter-clockwise)
  z             Undo the last turn
  0             Reset to solved
  q/Esc         Quit

Turns requested while another is animating are ignored unless --queue is
set. Committed turns are journaled unless --no-journal is set.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playQueue, "queue", false, "Queue turns requested while another is animating")
	playCmd.Flags().BoolVar(&playNoJournal, "no-journal", false, "Do not record the session")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes for the session")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so log to a file
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logDir, err := cfg.LogDir()
	if err != nil {
		return err
	}
	sessionLog, err := logging.OpenSessionLog(logDir, level)
	if err != nil {
		return err
	}
	defer sessionLog.Close()
	logger := sessionLog.Logger

	var extra []cubelet.Option
	if playQueue {
		extra = append(extra, cubelet.WithPolicy(cubelet.PolicyQueue))
	}
	engine, err := newEngine(cfg, logger, extra...)
	if err != nil {
		return err
	}

	var journal *storage.Journal
	if !playNoJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		journal, err = storage.StartJournal(db, "keyboard", playNotes, logger)
		if err != nil {
			return err
		}
		defer journal.Close()
		journalCommits(engine, journal, logger)
		rememberSession(journal.SessionID(), logger)
	}

	model := newCubeModel(engine, journal, logger, cfg.TUI.Tick.Duration())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	engine.Settle()
	fmt.Printf("Turns committed: %d\n", engine.Commits())
	if journal != nil {
		fmt.Printf("Session: %s\n", journal.SessionID())
	}
	fmt.Printf("Log: %s\n", sessionLog.Path())
	return nil
}

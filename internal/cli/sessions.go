package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet/internal/storage"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List journaled sessions",
	RunE:  runSessions,
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <session>",
	Short: "Delete a journaled session and its turns",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRm,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum sessions to list")
	sessionsCmd.AddCommand(sessionsRmCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(sessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%-10s %-20s %-9s %6s  %s", "ID", "STARTED", "SOURCE", "TURNS", "DURATION")))
	for _, s := range sessions {
		duration := "open"
		if s.EndedAt != nil {
			duration = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		fmt.Printf("%-10s %-20s %-9s %6d  %s\n",
			s.SessionID[:8],
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			s.TurnCount,
			duration,
		)
	}
	return nil
}

func runSessionsRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSessionRepository(db)
	session, err := repo.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := repo.Delete(session.SessionID); err != nil {
		return err
	}

	if sf := openAppState(logger); sf != nil && sf.LastSessionID() == session.SessionID {
		if err := sf.ClearLastSession(); err != nil {
			logger.Warn("failed to clear last session", "error", err)
		}
	}
	fmt.Printf("Deleted session %s (%d turns)\n", session.SessionID, session.TurnCount)
	return nil
}

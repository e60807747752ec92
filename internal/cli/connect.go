package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/ble"
	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/logging"
	"github.com/SeamusWaldron/cubelet/internal/protocol"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

var (
	connectTimeout     time.Duration
	connectNoJournal   bool
	connectOrientation bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Mirror a GoCube smart cube over Bluetooth",
	Long: `Scan for a GoCube, connect, and animate every turn made on the physical
cube. The cube must be solved when connecting.

Turns from the cube arrive faster than the animation, so they are always
queued and the animation speeds up while a backlog is waiting. Keyboard turns
work as in 'cubelet play'; reset is disabled because it cannot reset the
physical cube.`,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().DurationVar(&connectTimeout, "timeout", 5*time.Second, "Scan timeout")
	connectCmd.Flags().BoolVar(&connectNoJournal, "no-journal", false, "Do not record the session")
	connectCmd.Flags().BoolVar(&connectOrientation, "orientation", false, "Track how the cube is held")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

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

	// Connect BEFORE starting the TUI so failures print normally
	handler := ble.NewHandler(logger)
	turns := make(chan cube.Turn, 100)
	handler.OnTurn(func(t cube.Turn) {
		select {
		case turns <- t:
		default:
			logger.Warn("turn channel full, dropping turn", "turn", t.Notation())
		}
	})

	handler.OnMessage(func(m *protocol.Message) {
		logger.Debug("notification", "type", protocol.MessageTypeName(m.Type), "payload", fmt.Sprintf("% X", m.Payload))
	})

	client, err := ble.NewClient(handler, logger)
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	var lastAddress string
	appState := openAppState(logger)
	if appState != nil {
		lastAddress = appState.LastDeviceAddress()
	}

	fmt.Println("Scanning for GoCube devices...")
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	result, err := client.ConnectPreferred(ctx, connectTimeout, lastAddress)
	if err != nil {
		fmt.Println("No GoCube connected.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return err
	}
	defer client.Disconnect()
	fmt.Printf("Connected: %s\n", result.Name)
	if appState != nil {
		if err := appState.SetLastDevice(result.Address, result.Name); err != nil {
			logger.Warn("failed to save last device", "error", err)
		}
	}

	// The cube is solved now; align its internal tracking with the engine
	if err := client.ResetSolved(); err != nil {
		logger.Warn("reset solved failed", "error", err)
	}
	if err := client.RequestBattery(); err != nil {
		logger.Warn("battery request failed", "error", err)
	}
	if connectOrientation {
		if err := client.EnableOrientation(); err != nil {
			logger.Warn("enable orientation failed", "error", err)
		}
	}

	engine, err := newEngine(cfg, logger,
		cubelet.WithPolicy(cubelet.PolicyQueue),
		cubelet.WithUnboundedQueue(),
		cubelet.WithCatchUp(true),
	)
	if err != nil {
		return err
	}

	var journal *storage.Journal
	if !connectNoJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		journal, err = storage.StartJournal(db, "gocube", result.Name, logger)
		if err != nil {
			return err
		}
		defer journal.Close()
		journalCommits(engine, journal, logger)
		rememberSession(journal.SessionID(), logger)
	}

	model := newCubeModel(engine, journal, logger, cfg.TUI.Tick.Duration())
	model.turns = turns
	model.device = result.Name
	model.battery = handler.Battery()

	p := tea.NewProgram(model, tea.WithAltScreen())
	handler.OnBattery(func(level int) { p.Send(batteryMsg(level)) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	engine.Settle()
	fmt.Printf("Turns committed: %d\n", engine.Commits())
	if connectOrientation {
		up, front := handler.Orientation()
		fmt.Printf("Held with %s up, %s in front\n", up, front)
	}
	if journal != nil {
		fmt.Printf("Session: %s\n", journal.SessionID())
	}
	return nil
}

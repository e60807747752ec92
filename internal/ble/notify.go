package ble

import (
	"log/slog"
	"sync"

	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/protocol"
)

// Handler decodes GoCube notifications and fans them out to callbacks.
// It holds no BLE state so a simulated cube can drive it directly.
type Handler struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	battery int
	up      cube.Face
	front   cube.Face

	onTurn    func(cube.Turn)
	onBattery func(int)
	onMessage func(*protocol.Message)
}

// NewHandler creates a handler. A nil logger discards.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{logger: logger, battery: -1, up: cube.U, front: cube.F}
}

// OnTurn sets the callback for each decoded face turn.
func (h *Handler) OnTurn(cb func(cube.Turn)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTurn = cb
}

// OnBattery sets the callback for battery updates.
func (h *Handler) OnBattery(cb func(level int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBattery = cb
}

// OnMessage sets the callback for every parsed message.
func (h *Handler) OnMessage(cb func(*protocol.Message)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMessage = cb
}

// Battery returns the last known battery level (-1 if unknown).
func (h *Handler) Battery() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.battery
}

// Orientation returns the last reported up and front faces.
func (h *Handler) Orientation() (up, front cube.Face) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.up, h.front
}

// Handle processes one raw notification. Malformed frames are logged and
// dropped.
func (h *Handler) Handle(data []byte) {
	msg, err := protocol.Parse(data)
	if err != nil {
		h.logger.Warn("dropping notification", "error", err, "bytes", len(data))
		return
	}

	var turns []cube.Turn
	level := -1

	switch msg.Type {
	case protocol.MsgTypeRotation:
		rots, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			h.logger.Warn("bad rotation payload", "error", err)
			break
		}
		for _, r := range rots {
			turns = append(turns, r.Turn)
		}

	case protocol.MsgTypeBattery:
		if battery, err := protocol.DecodeBattery(msg.Payload); err == nil {
			level = battery.Level
			h.mu.Lock()
			h.battery = level
			h.mu.Unlock()
		}

	case protocol.MsgTypeOrientation:
		if o, err := protocol.DecodeOrientation(msg.Payload); err == nil {
			h.mu.Lock()
			h.up, h.front = o.Up, o.Front
			h.mu.Unlock()
		}

	default:
		h.logger.Debug("unhandled message", "type", protocol.MessageTypeName(msg.Type))
	}

	h.mu.RLock()
	onTurn, onBattery, onMessage := h.onTurn, h.onBattery, h.onMessage
	h.mu.RUnlock()

	// Callbacks run outside the lock
	if onMessage != nil {
		onMessage(msg)
	}
	if onTurn != nil {
		for _, t := range turns {
			onTurn(t)
		}
	}
	if level >= 0 && onBattery != nil {
		onBattery(level)
	}
}

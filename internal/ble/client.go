// Package ble connects to GoCube smart cubes and reports their face turns.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubelet/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// BLE UUIDs
var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RxCharUUID))
)

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	Address string
	RSSI    int16

	addr bluetooth.Address
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// Client manages the BLE connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	handler *Handler
	logger  *slog.Logger

	mu         sync.RWMutex
	device     bluetooth.Device
	rxChar     bluetooth.DeviceCharacteristic
	connected  bool
	deviceName string
}

// NewClient enables the default adapter. Notifications are passed to h.
func NewClient(h *Handler, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{adapter: adapter, handler: h, logger: logger}, nil
}

// Scan collects GoCube advertisements until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !IsGoCube(name) {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, Address: addr, RSSI: result.RSSI, addr: result.Address})
			c.logger.Debug("found cube", "name", name, "address", addr, "rssi", result.RSSI)
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// ConnectFirst scans and connects to the first GoCube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) (ScanResult, error) {
	return c.ConnectPreferred(ctx, timeout, "")
}

// ConnectPreferred scans and connects to the GoCube at address if it was
// seen, otherwise to the first one found.
func (c *Client) ConnectPreferred(ctx context.Context, timeout time.Duration, address string) (ScanResult, error) {
	results, err := c.Scan(ctx, timeout)
	if err != nil {
		return ScanResult{}, err
	}
	result, ok := pickDevice(results, address)
	if !ok {
		return ScanResult{}, ErrDeviceNotFound
	}
	return result, c.Connect(result)
}

func pickDevice(results []ScanResult, address string) (ScanResult, bool) {
	if len(results) == 0 {
		return ScanResult{}, false
	}
	if address != "" {
		for _, r := range results {
			if strings.EqualFold(r.Address, address) {
				return r, true
			}
		}
	}
	return results[0], true
}

// Connect connects to a scanned device and subscribes to notifications.
func (c *Client) Connect(result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(result.addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handler.Handle); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.mu.Unlock()

	c.logger.Info("connected", "name", result.Name, "address", result.Address)

	if err := c.RequestBattery(); err != nil {
		c.logger.Warn("battery request failed", "error", err)
	}
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// RequestBattery asks the cube for its battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube its current physical state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// EnableOrientation turns on orientation notifications.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(protocol.CmdEnableOrientation)
}

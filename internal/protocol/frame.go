// Package protocol implements GoCube smart-cube BLE message framing and
// decoding into cube turns.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE Service and Characteristic UUIDs
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message type constants
const (
	MsgTypeRotation    byte = 0x01
	MsgTypeState       byte = 0x02
	MsgTypeOrientation byte = 0x03
	MsgTypeBattery     byte = 0x05
	MsgTypeCubeType    byte = 0x08
)

// Command codes for writing to the RX characteristic
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
	CmdRequestCubeType    byte = 0x56
)

// Frame bytes
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
	ErrPayloadTooLarge = errors.New("protocol: payload too large")
)

// Message is one parsed notification.
type Message struct {
	Type    byte
	Payload []byte
}

// Parse parses a raw BLE notification.
//
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
// where length counts the bytes after itself and the checksum is the byte
// sum of everything before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	expectedLen := 2 + length
	if len(data) < expectedLen {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, expectedLen, len(data))
	}

	checksumIdx := length - 1
	if checksumIdx < 3 {
		return nil, ErrMessageTooShort
	}
	if data[checksumIdx+1] != FrameSuffix1 || data[checksumIdx+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	if sum := checksum(data[:checksumIdx]); sum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[checksumIdx], sum)
	}

	payload := make([]byte, checksumIdx-3)
	copy(payload, data[3:checksumIdx])

	return &Message{Type: data[2], Payload: payload}, nil
}

// Encode builds a notification frame. It is the inverse of Parse and is
// used to simulate a cube.
func Encode(msgType byte, payload []byte) ([]byte, error) {
	// type + payload + checksum + CR LF
	length := len(payload) + 4
	if length > 0xFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	out := make([]byte, 0, length+2)
	out = append(out, FramePrefix, byte(length), msgType)
	out = append(out, payload...)
	out = append(out, checksum(out), FrameSuffix1, FrameSuffix2)
	return out, nil
}

// BuildCommand creates a command message to send to the cube.
// Format: [0x2A] [0x01] [cmd] [checksum] [0x0D] [0x0A]
func BuildCommand(cmdCode byte) []byte {
	length := byte(0x01)
	return []byte{FramePrefix, length, cmdCode, FramePrefix + length + cmdCode, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

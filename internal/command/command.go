package command

import (
	"encoding/json"
	"fmt"

	"github.com/PXR05/TongSampahBinLaden/internal/device"
)

// Action is the command vocabulary shared by the poll and push transports.
type Action string

const (
	// ActionAuto returns the lid to policy control.
	ActionAuto Action = "auto"

	// ActionSetAngle sets a manual target position.
	ActionSetAngle Action = "setAngle"

	// ActionNotify is the legacy bare notification, treated as full.
	ActionNotify Action = "notify"

	// Fill-level notifications, side-effect-only.
	ActionNotifyEmpty   Action = "notifyEmpty"
	ActionNotifyPartial Action = "notifyPartial"
	ActionNotifyFull    Action = "notifyFull"
)

// Aliases the coordinator dashboard emits; normalized at decode time.
const (
	aliasOpen       = "open"
	aliasActivate   = "activate"
	aliasClose      = "close"
	aliasDeactivate = "deactivate"
)

// Alias default positions.
const (
	openAngle  = 90
	closeAngle = 0
)

// Command is one decoded coordinator command. It is transient: decoded from
// the wire, applied, then discarded. Identity is the ID; ordering is
// numeric, not arrival order.
type Command struct {
	ID             uint32
	Action         Action
	TargetPosition int
	HasTarget      bool
}

// IsNotification reports whether the action is side-effect-only.
func (c Command) IsNotification() bool {
	switch c.Action {
	case ActionNotify, ActionNotifyEmpty, ActionNotifyPartial, ActionNotifyFull:
		return true
	default:
		return false
	}
}

// FillLevel maps a notification action to its indicator level.
func (c Command) FillLevel() device.FillLevel {
	switch c.Action {
	case ActionNotifyEmpty:
		return device.FillEmpty
	case ActionNotifyPartial:
		return device.FillPartial
	case ActionNotifyFull, ActionNotify:
		return device.FillFull
	default:
		return device.FillUnknown
	}
}

// wireCommand is the JSON shape both transports deliver.
//
// The poll response carries deviceId and serverTimestamp alongside these
// fields; they are ignored here.
type wireCommand struct {
	CommandID      uint32 `json:"commandId"`
	Action         string `json:"action"`
	TargetPosition *int   `json:"targetPosition"`
}

// Decode parses a wire payload into a Command.
//
// Dashboard aliases (open/activate, close/deactivate) are normalized to
// setAngle with their conventional positions. A malformed payload or an
// unknown action is a protocol fault: the message is dropped by returning
// an error, with no state mutation and no retry.
func Decode(payload []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(payload, &w); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	cmd := Command{ID: w.CommandID}
	if w.TargetPosition != nil {
		cmd.TargetPosition = *w.TargetPosition
		cmd.HasTarget = true
	}

	switch w.Action {
	case string(ActionAuto):
		cmd.Action = ActionAuto
	case string(ActionSetAngle):
		if !cmd.HasTarget {
			return Command{}, fmt.Errorf("%w: setAngle without targetPosition", ErrMalformedPayload)
		}
		cmd.Action = ActionSetAngle
	case aliasOpen, aliasActivate:
		cmd.Action = ActionSetAngle
		if !cmd.HasTarget {
			cmd.TargetPosition = openAngle
			cmd.HasTarget = true
		}
	case aliasClose, aliasDeactivate:
		cmd.Action = ActionSetAngle
		if !cmd.HasTarget {
			cmd.TargetPosition = closeAngle
			cmd.HasTarget = true
		}
	case string(ActionNotify), string(ActionNotifyEmpty), string(ActionNotifyPartial), string(ActionNotifyFull):
		cmd.Action = Action(w.Action)
	case "":
		return Command{}, fmt.Errorf("%w: missing action", ErrMalformedPayload)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, w.Action)
	}

	return cmd, nil
}

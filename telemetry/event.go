package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/wisp/trail"
)

// EventKind identifies the type of notable event.
type EventKind string

const (
	// EventSaturation marks an emitter hitting a full store and starting
	// to drop spawns.
	EventSaturation EventKind = "saturation"
	// EventRecovery marks a saturated emitter spawning again.
	EventRecovery EventKind = "recovery"
)

// Event records a notable moment worth finding again in a long run.
type Event struct {
	Kind        EventKind      `csv:"kind"`
	Tick        int32          `csv:"tick"`
	Ribbon      trail.RibbonID `csv:"ribbon"`
	Description string         `csv:"description"`
}

// SaturationEvent builds the event for an emitter that just started
// dropping spawns.
func SaturationEvent(tick int32, ribbon trail.RibbonID, dropped int) Event {
	return Event{
		Kind:        EventSaturation,
		Tick:        tick,
		Ribbon:      ribbon,
		Description: fmt.Sprintf("store full, dropped %d spawns", dropped),
	}
}

// RecoveryEvent builds the event for an emitter that resumed spawning
// after saturation.
func RecoveryEvent(tick int32, ribbon trail.RibbonID) Event {
	return Event{
		Kind:        EventRecovery,
		Tick:        tick,
		Ribbon:      ribbon,
		Description: "store freed, spawning resumed",
	}
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	slog.Info("event",
		"kind", string(e.Kind),
		"tick", e.Tick,
		"ribbon", uint32(e.Ribbon),
		"description", e.Description,
	)
}

package lookup

import (
	"encoding/json"
	"fmt"

	"weather-widget/internal/models"
)

// MaxForecastEntries is the number of 3-hour steps kept in a Ready state.
const MaxForecastEntries = 5

type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindError
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindReady:
		return "ready"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// State is the single lookup state. Build it with Idle, Loading, Failed or Ready:
// only an error state carries a message and only a ready state carries weather data.
type State struct {
	kind     Kind
	message  string
	current  models.CurrentConditions
	forecast []models.ForecastEntry
}

func Idle() State {
	return State{kind: KindIdle}
}

func Loading() State {
	return State{kind: KindLoading}
}

func Failed(message string) State {
	return State{kind: KindError, message: message}
}

// Ready keeps the first MaxForecastEntries entries of forecast, in order.
func Ready(current models.CurrentConditions, forecast []models.ForecastEntry) State {
	n := min(len(forecast), MaxForecastEntries)
	kept := make([]models.ForecastEntry, n)
	copy(kept, forecast[:n])

	return State{kind: KindReady, current: current, forecast: kept}
}

func (s State) Kind() Kind {
	return s.kind
}

func (s State) Message() string {
	return s.message
}

func (s State) Current() (models.CurrentConditions, bool) {
	return s.current, s.kind == KindReady
}

func (s State) Forecast() []models.ForecastEntry {
	if s.kind != KindReady {
		return nil
	}
	out := make([]models.ForecastEntry, len(s.forecast))
	copy(out, s.forecast)
	return out
}

// Snapshot is the JSON shape of a State.
type Snapshot struct {
	Kind     Kind                      `json:"kind" swaggertype:"string" enums:"idle,loading,error,ready" example:"ready"`
	Message  string                    `json:"message,omitempty" example:"Ville non trouvée"`
	Current  *models.CurrentConditions `json:"current,omitempty"`
	Forecast []models.ForecastEntry    `json:"forecast,omitempty"`
}

func (s State) Snapshot() Snapshot {
	out := Snapshot{Kind: s.kind, Message: s.message}
	if s.kind == KindReady {
		current := s.current
		out.Current = &current
		out.Forecast = s.Forecast()
	}
	return out
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

package devicesync

import (
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/pkg/entity"
)

// Wire-level payload keys. Payloads travel as flat key/value maps so either
// side can ignore keys it doesn't understand.
const (
	KeyRequestSummary    = "requestSummary"
	KeyPendingIncrements = "pendingIncrements"
	KeyDayKey            = "dayKey"
	KeyCompleted         = "completed"
	KeyTarget            = "target"
	KeyFloorsPerCircuit  = "floorsPerCircuit"
	KeyWorkoutPayload    = "workoutPayload"

	keyWorkoutDate         = "date"
	keyWorkoutDuration     = "duration"
	keyWorkoutFloors       = "floors"
	keyWorkoutActiveEnergy = "activeEnergy"
	keyWorkoutHeartRate    = "averageHeartRate"
)

type Payload map[string]any

func EncodePayload(p Payload) ([]byte, error) {
	return sonic.ConfigDefault.Marshal(p)
}

func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := sonic.ConfigDefault.Unmarshal(data, &p); err != nil {
		return nil, errorvalues.ErrMalformedPayload
	}
	return p, nil
}

func RequestSummaryPayload() Payload {
	return Payload{KeyRequestSummary: true}
}

func FlushPayload(pendingIncrements int, dayKey string) Payload {
	return Payload{
		KeyPendingIncrements: pendingIncrements,
		KeyDayKey:            dayKey,
	}
}

func SummaryPayload(summary entity.DaySummary) Payload {
	return Payload{
		KeyDayKey:           summary.DayKey,
		KeyCompleted:        summary.Completed,
		KeyTarget:           summary.Target,
		KeyFloorsPerCircuit: summary.FloorsPerCircuit,
	}
}

func WorkoutPayload(ws entity.WorkoutSummary) Payload {
	return Payload{
		keyWorkoutDate:         ws.Date.Format(time.RFC3339),
		keyWorkoutDuration:     ws.DurationSeconds,
		keyWorkoutFloors:       ws.Floors,
		keyWorkoutActiveEnergy: ws.ActiveEnergy,
		keyWorkoutHeartRate:    ws.AverageHeartRate,
	}
}

// SummaryFromPayload extracts a full-state day summary. Every key is
// required; a missing one makes the whole payload malformed.
func SummaryFromPayload(p Payload) (entity.DaySummary, error) {
	dayKey, ok := p[KeyDayKey].(string)
	if !ok {
		return entity.DaySummary{}, errorvalues.ErrMalformedPayload
	}
	completed, ok := payloadInt(p, KeyCompleted)
	if !ok {
		return entity.DaySummary{}, errorvalues.ErrMalformedPayload
	}
	target, ok := payloadInt(p, KeyTarget)
	if !ok {
		return entity.DaySummary{}, errorvalues.ErrMalformedPayload
	}
	floors, ok := payloadInt(p, KeyFloorsPerCircuit)
	if !ok {
		return entity.DaySummary{}, errorvalues.ErrMalformedPayload
	}
	return entity.DaySummary{
		DayKey:           dayKey,
		Completed:        completed,
		Target:           target,
		FloorsPerCircuit: floors,
	}, nil
}

func WorkoutFromPayload(p Payload) (entity.WorkoutSummary, error) {
	rawDate, ok := p[keyWorkoutDate].(string)
	if !ok {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	date, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	duration, ok := payloadFloat(p, keyWorkoutDuration)
	if !ok {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	floors, ok := payloadFloat(p, keyWorkoutFloors)
	if !ok {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	energy, ok := payloadFloat(p, keyWorkoutActiveEnergy)
	if !ok {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	heartRate, ok := payloadFloat(p, keyWorkoutHeartRate)
	if !ok {
		return entity.WorkoutSummary{}, errorvalues.ErrMalformedPayload
	}
	return entity.WorkoutSummary{
		Date:             date,
		DurationSeconds:  duration,
		Floors:           floors,
		ActiveEnergy:     energy,
		AverageHeartRate: heartRate,
	}, nil
}

// EmbeddedWorkout pulls the optional workout sub-payload off a summary
// broadcast. Returns false when the key is absent.
func EmbeddedWorkout(p Payload) (entity.WorkoutSummary, bool, error) {
	raw, ok := p[KeyWorkoutPayload]
	if !ok {
		return entity.WorkoutSummary{}, false, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		if typed, isPayload := raw.(Payload); isPayload {
			sub = typed
		} else {
			return entity.WorkoutSummary{}, false, errorvalues.ErrMalformedPayload
		}
	}
	ws, err := WorkoutFromPayload(sub)
	if err != nil {
		return entity.WorkoutSummary{}, false, err
	}
	return ws, true, nil
}

// JSON round-trips turn ints into float64; accept both.
func payloadInt(p Payload, key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func payloadFloat(p Payload, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

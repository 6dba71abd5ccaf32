package attractor

import (
	"fmt"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Record is the serialized form of an attractor. Name selects the variant.
type Record struct {
	Name   string         `json:"name"`
	MapStr string         `json:"map_str"`
	Range  []dynamo.Range `json:"range"`
	Speeds []float64      `json:"speeds"`
	Coefs  []float64      `json:"coefs"`
	State  *dynamo.State  `json:"state"`
}

// ToRecord snapshots a. The record shares no memory with the attractor.
func ToRecord(a Attractor) Record {
	b := a.core()
	state := b.state.Clone()
	if !state.X.IsValid() {
		// A diverged trajectory has no encodable position.
		state.X = state.InitX.Clone()
		state.Time = 0
	}
	return Record{
		Name:   b.name,
		MapStr: b.mapStr,
		Range:  b.CoefRanges(),
		Speeds: b.Speeds(),
		Coefs:  append([]float64(nil), b.coefs...),
		State:  state,
	}
}

// FromRecord rebuilds the variant named by r. MapStr is informational and
// not restored. Empty Range or Speeds keep the variant defaults.
func FromRecord(r Record) (Attractor, error) {
	if r.Name == "" {
		return nil, ErrMissingName
	}
	a, err := NewByName(r.Name)
	if err != nil {
		return nil, err
	}
	b := a.core()
	bad := func(field, format string, args ...any) error {
		return &DecodeError{Name: r.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if len(r.Coefs) != len(b.coefs) {
		return nil, bad("coefs", "want %d values, got %d", len(b.coefs), len(r.Coefs))
	}
	if len(r.Range) != 0 && len(r.Range) != len(b.ranges) {
		return nil, bad("range", "want %d ranges, got %d", len(b.ranges), len(r.Range))
	}
	if len(r.Speeds) != 0 && len(r.Speeds) != len(b.speeds) {
		return nil, bad("speeds", "want %d values, got %d", len(b.speeds), len(r.Speeds))
	}
	if r.State == nil {
		return nil, bad("state", "missing")
	}
	if err := r.State.Validate(); err != nil {
		return nil, bad("state", "%v", err)
	}
	if r.State.N != b.state.N {
		return nil, bad("state.n", "want %d, got %d", b.state.N, r.State.N)
	}
	if (r.State.Dt == nil) != (b.state.Dt == nil) {
		return nil, bad("state.dt", "time step presence does not match variant")
	}

	b.coefs = append([]float64(nil), r.Coefs...)
	if len(r.Range) != 0 {
		b.ranges = append([]dynamo.Range(nil), r.Range...)
	}
	if len(r.Speeds) != 0 {
		b.speeds = append([]float64(nil), r.Speeds...)
	}
	b.state = r.State.Clone()
	b.invalidate()
	return a, nil
}

package storage

import (
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Record is a frame widened to float64, the on-disk form of dynamo.Frame.
type Record struct {
	Tick         int       `json:"tick"`
	ID           int64     `json:"id"`
	Mass         float64   `json:"mass"`
	Position     []float64 `json:"position"`
	Velocity     []float64 `json:"velocity"`
	Acceleration []float64 `json:"acceleration"`
}

// Records flattens per-tick frames in tick order.
func Records[N vecmath.Scalar](frames [][]dynamo.Frame[N]) []Record {
	out := make([]Record, 0)
	for _, tick := range frames {
		for _, f := range tick {
			r := Record{
				Tick:         f.Tick,
				ID:           f.ID,
				Mass:         float64(f.Mass),
				Velocity:     f.Velocity.Float64s(),
				Acceleration: f.Acceleration.Float64s(),
			}
			if f.Position != nil {
				r.Position = f.Position.Float64s()
			}
			out = append(out, r)
		}
	}
	return out
}

// Series returns one component of one body's vector across records.
func Series(records []Record, id int64, pick func(Record) []float64, component int) []float64 {
	out := make([]float64, 0)
	for _, r := range records {
		if r.ID != id {
			continue
		}
		v := pick(r)
		if component < len(v) {
			out = append(out, v[component])
		}
	}
	return out
}

func PickPosition(r Record) []float64     { return r.Position }
func PickVelocity(r Record) []float64     { return r.Velocity }
func PickAcceleration(r Record) []float64 { return r.Acceleration }

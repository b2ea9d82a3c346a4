package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

type TrajectoryData struct {
	Label      string             `json:"label,omitempty"`
	Params     kinetics.Params    `json:"params"`
	Initial    kinetics.Initial   `json:"initial"`
	Degenerate bool               `json:"degenerate,omitempty"`
	Times      []float64          `json:"times"`
	P          []float64          `json:"p"`
	M          []float64          `json:"m"`
	Fraction   []float64          `json:"fraction"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type SweepData struct {
	Axes         []sweep.Axis     `json:"axes"`
	GridPoints   int              `json:"grid_points"`
	Rows         int              `json:"rows"`
	Combinations []TrajectoryData `json:"combinations"`
}

func NewTrajectoryData(tr *kinetics.Trajectory) TrajectoryData {
	return TrajectoryData{
		Params:     tr.Params,
		Initial:    tr.Initial,
		Degenerate: tr.Degenerate,
		Times:      tr.Times,
		P:          tr.P,
		M:          tr.M,
		Fraction:   tr.Fractions(),
	}
}

func NewSweepData(res *sweep.Result) SweepData {
	data := SweepData{
		Axes:         res.Axes,
		GridPoints:   len(res.Grid),
		Rows:         res.Len(),
		Combinations: make([]TrajectoryData, len(res.Combinations)),
	}
	for i, c := range res.Combinations {
		d := NewTrajectoryData(res.Trajectories[i])
		d.Label = c.Label
		if res.Metrics != nil {
			d.Metrics = jsonSafe(res.Metrics[i])
		}
		data.Combinations[i] = d
	}
	return data
}

// WriteJSON encodes v with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// jsonSafe drops NaN/Inf metrics, which encoding/json rejects.
func jsonSafe(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}

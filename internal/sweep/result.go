package sweep

import (
	"github.com/san-kum/splicesim/internal/kinetics"
)

// Row is one (combination, time point) entry of the flattened sweep table.
type Row struct {
	Combination int
	Time        float64
	P           float64
	M           float64
	Fraction    float64
}

// Len is the number of rows: grid points × combinations.
func (r *Result) Len() int {
	return len(r.Grid) * len(r.Combinations)
}

// Rows flattens the sweep in combination order, then time order.
func (r *Result) Rows() []Row {
	rows := make([]Row, 0, r.Len())
	r.Each(func(row Row) bool {
		rows = append(rows, row)
		return true
	})
	return rows
}

// Each visits rows in the order of Rows until fn returns false.
func (r *Result) Each(fn func(Row) bool) {
	for ci, tr := range r.Trajectories {
		for i, t := range tr.Times {
			row := Row{
				Combination: ci,
				Time:        t,
				P:           tr.P[i],
				M:           tr.M[i],
				Fraction:    tr.Fraction(i),
			}
			if !fn(row) {
				return
			}
		}
	}
}

// AxisIndex returns the position of param in r.Axes, or -1.
func (r *Result) AxisIndex(param string) int {
	for i, a := range r.Axes {
		if a.Param == param {
			return i
		}
	}
	return -1
}

// Value returns the exact value of param for combination c, whether swept or fixed.
func (c Combination) Value(param string) float64 {
	switch param {
	case kinetics.ParamTau:
		return c.Params.Tau
	case kinetics.ParamSigma:
		return c.Params.Sigma
	case kinetics.ParamLambda:
		return c.Params.Lambda
	case kinetics.ParamP0:
		return c.Initial.P0
	case kinetics.ParamM0:
		return c.Initial.M0
	}
	return 0
}

// Group is the set of combinations sharing one value of a parameter.
type Group struct {
	Param   string
	Value   float64
	Label   string
	Indices []int
}

// GroupBy partitions combinations by the exact value of param, in order of
// first appearance.
func (r *Result) GroupBy(param string) []Group {
	var groups []Group
	pos := make(map[float64]int)
	for i, c := range r.Combinations {
		v := c.Value(param)
		gi, ok := pos[v]
		if !ok {
			gi = len(groups)
			pos[v] = gi
			groups = append(groups, Group{Param: param, Value: v, Label: Label(param, v)})
		}
		groups[gi].Indices = append(groups[gi].Indices, i)
	}
	return groups
}

// Select returns the indices of combinations whose param equals value exactly.
func (r *Result) Select(param string, value float64) []int {
	var out []int
	for i, c := range r.Combinations {
		if c.Value(param) == value {
			out = append(out, i)
		}
	}
	return out
}

package analysis

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

// InvarianceGroup summarizes combinations that differ only in τ.
type InvarianceGroup struct {
	Label   string
	Sigma   float64
	Lambda  float64
	P0      float64
	M0      float64
	Members int
	// MaxSpread is the largest max−min of fraction unspliced across τ at any time point.
	MaxSpread float64
	// MeanStdDev is the population standard deviation across τ, averaged over time points.
	MeanStdDev float64
}

type InvarianceReport struct {
	Groups    []InvarianceGroup
	MaxSpread float64
}

type groupKey struct {
	sigma, lambda, p0, m0 float64
}

// TauInvariance measures how much fraction unspliced changes with τ in a
// sweep that has a τ axis with at least two values.
func TauInvariance(res *sweep.Result) (*InvarianceReport, error) {
	ti := res.AxisIndex(kinetics.ParamTau)
	if ti < 0 || len(res.Axes[ti].Values) < 2 {
		return nil, fmt.Errorf("%w: tau invariance needs a tau axis with at least two values", dynamo.ErrInvalidParameter)
	}

	var keys []groupKey
	members := make(map[groupKey][]int)
	for i, c := range res.Combinations {
		k := groupKey{c.Params.Sigma, c.Params.Lambda, c.Initial.P0, c.Initial.M0}
		if _, ok := members[k]; !ok {
			keys = append(keys, k)
		}
		members[k] = append(members[k], i)
	}

	rep := &InvarianceReport{}
	n := len(res.Grid)
	column := make([]float64, 0, len(res.Axes[ti].Values))

	for _, k := range keys {
		idx := members[k]
		g := InvarianceGroup{
			Label:   groupLabel(res, idx[0], ti),
			Sigma:   k.sigma,
			Lambda:  k.lambda,
			P0:      k.p0,
			M0:      k.m0,
			Members: len(idx),
		}

		var sdSum float64
		for t := 0; t < n; t++ {
			column = column[:0]
			for _, ci := range idx {
				column = append(column, res.Trajectories[ci].Fraction(t))
			}
			hi, err := stats.Max(column)
			if err != nil {
				return nil, err
			}
			lo, err := stats.Min(column)
			if err != nil {
				return nil, err
			}
			sd, err := stats.StandardDeviationPopulation(column)
			if err != nil {
				return nil, err
			}
			if hi-lo > g.MaxSpread {
				g.MaxSpread = hi - lo
			}
			sdSum += sd
		}
		if n > 0 {
			g.MeanStdDev = sdSum / float64(n)
		}
		if g.MaxSpread > rep.MaxSpread {
			rep.MaxSpread = g.MaxSpread
		}
		rep.Groups = append(rep.Groups, g)
	}

	return rep, nil
}

func groupLabel(res *sweep.Result, ci, skip int) string {
	c := res.Combinations[ci]
	var parts []string
	for i, a := range res.Axes {
		if i == skip {
			continue
		}
		parts = append(parts, sweep.Label(a.Param, c.Values[i]))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s, %s", sweep.Label(kinetics.ParamSigma, c.Params.Sigma), sweep.Label(kinetics.ParamLambda, c.Params.Lambda))
	}
	return strings.Join(parts, ", ")
}

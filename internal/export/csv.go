package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

// Header lists the columns written by WriteSweepCSV.
var Header = []string{
	"combination", "label",
	kinetics.ParamTau, kinetics.ParamSigma, kinetics.ParamLambda, kinetics.ParamP0, kinetics.ParamM0,
	"time", "P", "M", "fraction",
}

// formatFloat keeps the shortest representation that parses back to the same value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSweepCSV writes one row per (combination, time point) with exact
// grouping columns.
func WriteSweepCSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	var werr error
	res.Each(func(r sweep.Row) bool {
		c := res.Combinations[r.Combination]
		row := []string{
			strconv.Itoa(c.Index),
			c.Label,
			formatFloat(c.Params.Tau),
			formatFloat(c.Params.Sigma),
			formatFloat(c.Params.Lambda),
			formatFloat(c.Initial.P0),
			formatFloat(c.Initial.M0),
			formatFloat(r.Time),
			formatFloat(r.P),
			formatFloat(r.M),
			formatFloat(r.Fraction),
		}
		if err := cw.Write(row); err != nil {
			werr = fmt.Errorf("write row: %w", err)
			return false
		}
		return true
	})
	if werr != nil {
		return werr
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes time, P, M and fraction for a single run.
func WriteTrajectoryCSV(w io.Writer, tr *kinetics.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "P", "M", "fraction"}); err != nil {
		return err
	}
	for i, t := range tr.Times {
		row := []string{
			formatFloat(t),
			formatFloat(tr.P[i]),
			formatFloat(tr.M[i]),
			formatFloat(tr.Fraction(i)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
)

// Axis is one varying parameter and its candidate values.
type Axis struct {
	Param  string    `json:"param" yaml:"param"`
	Values []float64 `json:"values" yaml:"values"`
}

var symbols = map[string]string{
	kinetics.ParamTau:    "τ",
	kinetics.ParamSigma:  "σ",
	kinetics.ParamLambda: "λ",
	kinetics.ParamP0:     "P0",
	kinetics.ParamM0:     "M0",
}

// Symbol returns the display symbol for a parameter name.
func Symbol(param string) string {
	if s, ok := symbols[param]; ok {
		return s
	}
	return param
}

// Label formats a single "σ = 1" style tag.
func Label(param string, value float64) string {
	return Symbol(param) + " = " + strconv.FormatFloat(value, 'g', -1, 64)
}

// ParseValues parses a comma separated value list such as "0.5,1,2".
func ParseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func validateAxes(axes []Axis) error {
	seen := make(map[string]bool, len(axes))
	for _, a := range axes {
		if _, ok := symbols[a.Param]; !ok {
			return fmt.Errorf("%w: unknown sweep parameter %q", dynamo.ErrInvalidParameter, a.Param)
		}
		if seen[a.Param] {
			return fmt.Errorf("%w: parameter %q swept twice", dynamo.ErrInvalidParameter, a.Param)
		}
		seen[a.Param] = true

		if len(a.Values) == 0 {
			return fmt.Errorf("%w: axis %q has no values", dynamo.ErrInvalidParameter, a.Param)
		}
		values := make(map[float64]bool, len(a.Values))
		for _, v := range a.Values {
			if math.IsNaN(v) {
				return dynamo.NewParamError(a.Param, v, "is not a number")
			}
			if values[v] {
				return dynamo.NewParamError(a.Param, v, "appears twice on its axis")
			}
			values[v] = true
		}
	}
	return nil
}

func apply(p *kinetics.Params, x0 *kinetics.Initial, param string, v float64) {
	switch param {
	case kinetics.ParamTau:
		p.Tau = v
	case kinetics.ParamSigma:
		p.Sigma = v
	case kinetics.ParamLambda:
		p.Lambda = v
	case kinetics.ParamP0:
		x0.P0 = v
	case kinetics.ParamM0:
		x0.M0 = v
	}
}

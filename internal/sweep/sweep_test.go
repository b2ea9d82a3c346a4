package sweep_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/metrics"
	"github.com/san-kum/splicesim/internal/sweep"
)

var defaults = kinetics.Params{Tau: 1, Sigma: 1, Lambda: 0.1}

func tauSigma() []sweep.Axis {
	return []sweep.Axis{
		{Param: kinetics.ParamTau, Values: []float64{0.5, 1, 2}},
		{Param: kinetics.ParamSigma, Values: []float64{0.5, 1, 2}},
	}
}

var _ = Describe("Run", func() {
	ctx := context.Background()

	Context("with a τ × σ grid", func() {
		var res *sweep.Result

		BeforeEach(func() {
			var err error
			res, err = sweep.Run(ctx, sweep.Request{
				Axes:    tauSigma(),
				Fixed:   defaults,
				Grid:    sweep.Linspace(0, 20, 2001),
				Workers: 4,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces m × n × L rows", func() {
			Expect(res.Combinations).To(HaveLen(9))
			Expect(res.Trajectories).To(HaveLen(9))
			Expect(res.Len()).To(Equal(9 * 2001))
			Expect(res.Rows()).To(HaveLen(9 * 2001))
		})

		It("enumerates every combination exactly once in lexicographic order", func() {
			var got [][2]float64
			for _, c := range res.Combinations {
				got = append(got, [2]float64{c.Params.Tau, c.Params.Sigma})
			}
			Expect(got).To(Equal([][2]float64{
				{0.5, 0.5}, {0.5, 1}, {0.5, 2},
				{1, 0.5}, {1, 1}, {1, 2},
				{2, 0.5}, {2, 1}, {2, 2},
			}))
			for i, c := range res.Combinations {
				Expect(c.Index).To(Equal(i))
				Expect(c.Params.Lambda).To(Equal(0.1))
			}
		})

		It("labels combinations without touching the exact values", func() {
			Expect(res.Combinations[1].Label).To(Equal("τ = 0.5, σ = 1"))
			Expect(res.Combinations[1].Values).To(Equal([]float64{0.5, 1}))
			Expect(res.Trajectories[1].Params).To(Equal(res.Combinations[1].Params))
		})

		It("matches direct solver calls", func() {
			grid, _ := dynamo.Linspace(0, 20, 2001)
			for i, c := range res.Combinations {
				direct, err := kinetics.Solve(c.Params, c.Initial, grid)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Trajectories[i].P).To(Equal(direct.P))
				Expect(res.Trajectories[i].M).To(Equal(direct.M))
			}
		})

		It("groups by exact parameter value", func() {
			groups := res.GroupBy(kinetics.ParamSigma)
			Expect(groups).To(HaveLen(3))
			Expect(groups[0].Value).To(Equal(0.5))
			Expect(groups[0].Label).To(Equal("σ = 0.5"))
			Expect(groups[0].Indices).To(Equal([]int{0, 3, 6}))
			Expect(res.Select(kinetics.ParamTau, 2)).To(Equal([]int{6, 7, 8}))
			Expect(res.AxisIndex(kinetics.ParamSigma)).To(Equal(1))
			Expect(res.AxisIndex(kinetics.ParamLambda)).To(Equal(-1))
		})

		It("shows the same fraction unspliced across τ for each σ", func() {
			for _, g := range res.GroupBy(kinetics.ParamSigma) {
				ref := res.Trajectories[g.Indices[0]]
				for _, idx := range g.Indices[1:] {
					tr := res.Trajectories[idx]
					for i := range tr.Times {
						Expect(tr.Fraction(i)).To(BeNumerically("~", ref.Fraction(i), 1e-12))
					}
				}
			}
		})

		It("reports fraction 0 at t = 0", func() {
			res.Each(func(r sweep.Row) bool {
				if r.Time == 0 {
					Expect(r.Fraction).To(BeZero())
				}
				return true
			})
		})
	})

	It("is deterministic across worker counts", func() {
		req := sweep.Request{
			Axes:  append(tauSigma(), sweep.Axis{Param: kinetics.ParamLambda, Values: []float64{0.05, 0.1, 0.2}}),
			Fixed: defaults,
			Grid:  sweep.Linspace(0, 5, 51),
		}
		req.Workers = 1
		serial, err := sweep.Run(ctx, req)
		Expect(err).NotTo(HaveOccurred())
		req.Workers = 8
		parallel, err := sweep.Run(ctx, req)
		Expect(err).NotTo(HaveOccurred())

		Expect(parallel.Len()).To(Equal(27 * 51))
		Expect(parallel.Rows()).To(Equal(serial.Rows()))
	})

	It("invokes the grid factory once", func() {
		calls := 0
		_, err := sweep.Run(ctx, sweep.Request{
			Axes:  tauSigma(),
			Fixed: defaults,
			Grid: func() (dynamo.TimeGrid, error) {
				calls++
				return dynamo.TimeGrid{0, 0.5, 1}, nil
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(1))
	})

	It("sweeps initial conditions", func() {
		res, err := sweep.Run(ctx, sweep.Request{
			Axes:  []sweep.Axis{{Param: kinetics.ParamP0, Values: []float64{0, 5}}},
			Fixed: defaults,
			Grid:  sweep.Fixed(dynamo.TimeGrid{0}),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trajectories[1].P[0]).To(BeNumerically("~", 5, 1e-12))
		Expect(res.Combinations[1].Value(kinetics.ParamP0)).To(Equal(5.0))
	})

	It("returns an empty table for an empty grid", func() {
		res, err := sweep.Run(ctx, sweep.Request{
			Axes:  tauSigma(),
			Fixed: defaults,
			Grid:  sweep.Fixed(dynamo.TimeGrid{}),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Combinations).To(HaveLen(9))
		Expect(res.Len()).To(BeZero())
	})

	It("attaches metrics per combination", func() {
		res, err := sweep.Run(ctx, sweep.Request{
			Axes:    tauSigma(),
			Fixed:   defaults,
			Grid:    sweep.Linspace(0, 400, 4001),
			Metrics: metrics.Default,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveLen(9))
		for i, c := range res.Combinations {
			Expect(res.Metrics[i]).To(HaveKeyWithValue("final_fraction",
				BeNumerically("~", c.Params.SteadyFraction(), 1e-9)))
		}
	})

	DescribeTable("rejects invalid requests",
		func(req sweep.Request, target error) {
			if req.Grid == nil {
				req.Grid = sweep.Linspace(0, 1, 11)
			}
			res, err := sweep.Run(ctx, req)
			Expect(errors.Is(err, target)).To(BeTrue(), "got %v", err)
			Expect(res).To(BeNil())
		},
		Entry("empty axis",
			sweep.Request{Axes: []sweep.Axis{{Param: kinetics.ParamTau}}, Fixed: defaults},
			dynamo.ErrInvalidParameter),
		Entry("duplicate axis",
			sweep.Request{Axes: []sweep.Axis{
				{Param: kinetics.ParamTau, Values: []float64{1}},
				{Param: kinetics.ParamTau, Values: []float64{2}},
			}, Fixed: defaults},
			dynamo.ErrInvalidParameter),
		Entry("duplicate value",
			sweep.Request{Axes: []sweep.Axis{{Param: kinetics.ParamSigma, Values: []float64{1, 1}}}, Fixed: defaults},
			dynamo.ErrInvalidParameter),
		Entry("unknown parameter",
			sweep.Request{Axes: []sweep.Axis{{Param: "gravity", Values: []float64{1}}}, Fixed: defaults},
			dynamo.ErrInvalidParameter),
		Entry("non-positive rate in a set",
			sweep.Request{Axes: []sweep.Axis{{Param: kinetics.ParamSigma, Values: []float64{1, 0}}}, Fixed: defaults},
			dynamo.ErrInvalidParameter),
		Entry("invalid grid",
			sweep.Request{Axes: tauSigma(), Fixed: defaults, Grid: sweep.Fixed(dynamo.TimeGrid{0, 2, 1})},
			dynamo.ErrInvalidParameter),
		Entry("degenerate rates in strict mode",
			sweep.Request{
				Axes:    []sweep.Axis{{Param: kinetics.ParamLambda, Values: []float64{0.1, 1}}},
				Fixed:   defaults,
				Options: []kinetics.Option{kinetics.WithStrictRates()},
			},
			dynamo.ErrDegenerateRates),
	)

	It("stops on a canceled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		res, err := sweep.Run(cctx, sweep.Request{Axes: tauSigma(), Fixed: defaults, Grid: sweep.Linspace(0, 1, 11)})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(res).To(BeNil())
	})

	It("keeps degenerate combinations finite by default", func() {
		res, err := sweep.Run(ctx, sweep.Request{
			Axes:  []sweep.Axis{{Param: kinetics.ParamLambda, Values: []float64{0.1, 1}}},
			Fixed: defaults,
			Grid:  sweep.Linspace(0, 20, 201),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trajectories[1].Degenerate).To(BeTrue())
		res.Each(func(r sweep.Row) bool {
			Expect(math.IsNaN(r.M) || math.IsInf(r.M, 0)).To(BeFalse())
			return true
		})
	})
})

var _ = Describe("ParseValues", func() {
	It("parses comma separated lists", func() {
		v, err := sweep.ParseValues("0.5, 1,2,")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal([]float64{0.5, 1, 2}))
	})

	It("rejects garbage", func() {
		_, err := sweep.ParseValues("1,x")
		Expect(err).To(HaveOccurred())
	})
})

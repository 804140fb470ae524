package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gozinf/domain/dist"
	"gozinf/domain/link"
	"gozinf/internal/montecarlo"
	"gozinf/internal/rng"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gozinf",
		Short: "Evaluate and sample zero-inflated distributions",
	}

	rootCmd.AddCommand(
		newEvalCmd(),
		newQuantileCmd(),
		newMomentsCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// distFlags collects the link/family/predictor selection shared by every
// subcommand.
type distFlags struct {
	linkName   string
	offset     float64
	familyName string
	p1         float64
	p2         float64
	dispersion float64
	noBiasCorr bool
	seed       uint64
}

func (f *distFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.linkName, "link", "logit-log", "link function: logit-log, poisson, identity")
	cmd.Flags().Float64Var(&f.offset, "offset", 1, "poisson link offset (must be > 0)")
	cmd.Flags().StringVar(&f.familyName, "family", "lognormal", "positive-part family: lognormal, gamma, inverse-gamma, inverse-gaussian")
	cmd.Flags().Float64Var(&f.p1, "p1", 0, "first linear predictor")
	cmd.Flags().Float64Var(&f.p2, "p2", 0, "second linear predictor")
	cmd.Flags().Float64Var(&f.dispersion, "dispersion", 1, "positive-part dispersion")
	cmd.Flags().BoolVar(&f.noBiasCorr, "no-bias-correction", false, "match the transformed-scale median instead of the mean")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 uses the process default source)")
}

func (f *distFlags) build() (dist.ZeroInflated, error) {
	var lnk link.Link
	var err error
	switch f.linkName {
	case "logit-log":
		lnk, err = link.New(link.TypeLogitLog)
	case "poisson":
		lnk, err = link.NewPoisson(f.offset)
	case "identity":
		lnk, err = link.New(link.TypeIdentity)
	default:
		return dist.ZeroInflated{}, fmt.Errorf("unknown link %q", f.linkName)
	}
	if err != nil {
		return dist.ZeroInflated{}, err
	}

	fam, err := dist.ParseFamily(f.familyName)
	if err != nil {
		return dist.ZeroInflated{}, err
	}

	var src rand.Source
	if f.seed != 0 {
		src = rng.New(f.seed)
	}
	if f.noBiasCorr {
		return dist.DeriveUncorrected(lnk, fam, f.p1, f.p2, f.dispersion, src)
	}
	return dist.Derive(lnk, fam, f.p1, f.p2, f.dispersion, src)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func newEvalCmd() *cobra.Command {
	var flags distFlags

	cmd := &cobra.Command{
		Use:   "eval [x...]",
		Short: "Evaluate density, log-density and CDF at the given points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := flags.build()
			if err != nil {
				return err
			}
			xs, err := parseFloats(args)
			if err != nil {
				return err
			}
			for _, x := range xs {
				fmt.Printf("x=%g  pdf=%g  logpdf=%g  cdf=%g\n", x, z.Prob(x), z.LogProb(x), z.CDF(x))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newQuantileCmd() *cobra.Command {
	var flags distFlags

	cmd := &cobra.Command{
		Use:   "quantile [q...]",
		Short: "Evaluate the inverse CDF at the given probabilities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := flags.build()
			if err != nil {
				return err
			}
			qs, err := parseFloats(args)
			if err != nil {
				return err
			}
			for _, q := range qs {
				if q < 0 || q > 1 {
					return fmt.Errorf("quantile %g outside [0,1]", q)
				}
				fmt.Printf("q=%g  x=%g\n", q, z.Quantile(q))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newMomentsCmd() *cobra.Command {
	var flags distFlags

	cmd := &cobra.Command{
		Use:   "moments",
		Short: "Print the distribution's moments and modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := flags.build()
			if err != nil {
				return err
			}
			modes := z.Modes()
			fmt.Printf("encounter probability: %g\n", z.EncounterDistribution().P)
			fmt.Printf("mean:                  %g\n", z.Mean())
			fmt.Printf("variance:              %g\n", z.Variance())
			fmt.Printf("stddev:                %g\n", z.StdDev())
			fmt.Printf("modes:                 %g, %g\n", modes[0], modes[1])
			fmt.Printf("support:               [%g, %g]\n", z.Min(), z.Max())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSampleCmd() *cobra.Command {
	var flags distFlags
	var n, workers int
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw samples and print them with an empirical summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := flags.build()
			if err != nil {
				return err
			}
			samples, err := montecarlo.Draw(context.Background(), z, n, workers)
			if err != nil {
				return err
			}
			if !summaryOnly {
				for _, x := range samples {
					fmt.Println(x)
				}
			}
			s, err := montecarlo.Summarize(samples)
			if err != nil {
				return err
			}
			fmt.Printf("n=%d mean=%g stddev=%g median=%g min=%g max=%g zero-share=%g\n",
				s.N, s.Mean, s.StdDev, s.Median, s.Min, s.Max, s.ZeroShare)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&n, "n", 10, "number of draws")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel sampling workers (draws are not reproducible when > 1)")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "print only the empirical summary")
	return cmd
}

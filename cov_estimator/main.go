package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Kmer-Coverage-Estimation/cov_estimator/common"
	"Kmer-Coverage-Estimation/cov_estimator/config"
	"Kmer-Coverage-Estimation/cov_estimator/estimator"
	"Kmer-Coverage-Estimation/cov_estimator/histogram"
	"Kmer-Coverage-Estimation/cov_estimator/model"
	"Kmer-Coverage-Estimation/cov_estimator/plotting"
)

var (
	kmerSize   int
	readLength int

	errorRate        float64
	coverage         float64
	guessedCoverage  float64
	guessedErrorRate float64

	trim     int
	autotrim int

	useGrid          bool
	useHillclimb     bool
	repeats          bool
	llOnly           bool
	plotProbs        bool
	quiet            bool
	machinePrecision bool

	plotFile string
	seed     int64
)

var rootCmd = &cobra.Command{
	Use:   "cov_estimator <histogram>",
	Short: "Estimate genome coverage and error rate from a k-mer histogram",
	Long: `Estimate sequencing coverage and per-base error rate by fitting a
truncated-Poisson mixture model to a k-mer multiplicity histogram.

The histogram file holds one "<multiplicity> <count>" pair per line, in any
order; missing levels count as zero.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&kmerSize, "kmer-size", "k", config.DefaultKmerSize, "k-mer size")
	f.IntVarP(&readLength, "read-length", "r", config.DefaultReadLength, "read length")
	f.Float64VarP(&errorRate, "error-rate", "e", 0, "known error rate, reported for comparison")
	f.Float64VarP(&coverage, "coverage", "c", 0, "known coverage, reported for comparison")
	f.Float64Var(&guessedCoverage, "guessed-coverage", 0, "override the analytic coverage guess")
	f.Float64Var(&guessedErrorRate, "guessed-error-rate", 0, "override the analytic error-rate guess")
	f.IntVarP(&trim, "trim", "t", 0, "trim the histogram at this level")
	f.IntVar(&autotrim, "autotrim", 0, "trim where cumulative mass saturates at this decimal precision")
	f.BoolVarP(&useGrid, "grid", "g", false, "refine the estimate with grid search")
	f.BoolVar(&useHillclimb, "hillclimbing", false, "refine the estimate with randomized hill climbing")
	f.BoolVar(&repeats, "repeats", false, "estimate with the repeat-aware model")
	f.BoolVar(&llOnly, "ll-only", false, "only compute the log-likelihood at the known parameters")
	f.BoolVar(&plotProbs, "plot", false, "plot observed vs. fitted probabilities")
	f.StringVar(&plotFile, "plot-file", "fit.png", "output file for --plot")
	f.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	f.BoolVar(&machinePrecision, "machine-precision", false, "use float64 arithmetic instead of extended precision")
	f.Int64Var(&seed, "seed", 0, "random seed for hill climbing (0 = time-based)")
}

func run(cmd *cobra.Command, args []string) error {
	if quiet {
		log.SetLevel(log.WarnLevel)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hist, err := histogram.Load(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("autotrim") {
		log.Infof("trimming at: %d", hist.AutoTrim(autotrim))
	} else if cmd.Flags().Changed("trim") {
		hist.Trim(trim)
	}

	var arith model.Arithmetic = model.NewBigArith(0)
	if machinePrecision {
		arith = model.NewFloatArith()
	}
	m := model.New(readLength, kmerSize, arith)

	origCoverage := changedFloat(cmd, "coverage", coverage)
	origErrorRate := changedFloat(cmd, "error-rate", errorRate)

	if llOnly {
		if origCoverage == nil || origErrorRate == nil {
			return errors.New("--ll-only requires --coverage and --error-rate")
		}
		ll := m.LogLikelihood(hist.Counts, *origCoverage, *origErrorRate)
		fmt.Printf("Loglikelihood: %g\n", ll)
		return nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Infof("estimating coverage for %s", args[0])
	est := estimator.New(m, estimator.Options{
		Repeats:          repeats,
		UseGrid:          useGrid,
		UseHillclimb:     useHillclimb,
		Seed:             seed,
		GuessedCoverage:  changedFloat(cmd, "guessed-coverage", guessedCoverage),
		GuessedErrorRate: changedFloat(cmd, "guessed-error-rate", guessedErrorRate),
		OrigCoverage:     origCoverage,
		OrigErrorRate:    origErrorRate,
	})
	res := est.Run(ctx, hist)
	if err := res.WriteJSON(os.Stdout); err != nil {
		return err
	}

	if plotProbs {
		estimated := common.Params{Coverage: res.EstimatedCoverage, ErrorRate: res.EstimatedErrorRate}
		guessed := common.Params{Coverage: res.GuessedCoverage, ErrorRate: res.GuessedErrorRate}
		var original *common.Params
		if origCoverage != nil && origErrorRate != nil {
			original = &common.Params{Coverage: *origCoverage, ErrorRate: *origErrorRate}
		}
		if err := plotting.Save(m, hist.Counts, estimated, guessed, original, plotFile); err != nil {
			return err
		}
		log.Infof("plot written to %s", plotFile)
	}
	return nil
}

// changedFloat returns the flag's value only when it was set on the command
// line, distinguishing an explicit 0 from an absent optional parameter.
func changedFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

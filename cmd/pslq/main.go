// Command pslq reads decimal constants from one or more files and
// searches for an integer relation among them.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relation-finder/pslq"
	"github.com/relation-finder/pslq/diagnostics"
)

var (
	log    = logrus.New()
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pslq",
		Short: "Find integer relations among real numbers with PSLQ",
	}
	root.PersistentFlags().String("config", "", "YAML config file (overrides defaults, overridden by flags/env)")
	root.PersistentFlags().Bool("verbose", false, "Raise log level to debug")
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Read decimal constants from file(s) and search for a relation",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().Uint("prec", 128, "Precision in bits")
	cmd.Flags().Int64("max-steps", 0, "Maximum PSLQ rounds (0 = computed budget)")
	cmd.Flags().Float64("max-norm", 1e6, "Maximum certified relation norm")
	cmd.Flags().String("gamma", "", "Override the convergence parameter gamma (default 2/sqrt(3)+0.01)")
	cmd.Flags().String("plot", "", "Write a convergence chart (HTML) to this path")
	return cmd
}

// bindConfig layers viper config: flags > environment (PSLQ_*) > config
// file > defaults, following the corpus's viper.BindPFlag/AutomaticEnv
// idiom.
func bindConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("prec", uint(128))
	v.SetDefault("max-steps", int64(0))
	v.SetDefault("max-norm", 1e6)
	v.SetDefault("gamma", "")
	v.SetDefault("plot", "")
	v.SetDefault("verbose", false)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("PSLQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.InheritedFlags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}
	return v, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	v, err := bindConfig(cmd)
	if err != nil {
		return err
	}
	if v.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	prec := uint(v.GetInt("prec"))
	var xs []big.Float
	for _, arg := range args {
		xs, err = readFile(arg, xs, prec)
		if err != nil {
			return err
		}
	}
	if len(xs) == 0 {
		return fmt.Errorf("no input values read")
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].Cmp(&xs[j]) < 0 })

	gamma := pslq.DefaultGamma(prec)
	if s := v.GetString("gamma"); s != "" {
		g, ok := new(big.Float).SetPrec(prec).SetString(s)
		if !ok {
			return fmt.Errorf("invalid --gamma value %q", s)
		}
		gamma = g
	}
	maxNorm := new(big.Float).SetPrec(prec).SetFloat64(v.GetFloat64("max-norm"))

	var opts []pslq.Option
	if steps := v.GetInt64("max-steps"); steps > 0 {
		opts = append(opts, pslq.WithMaxSteps(int(steps)))
	}

	log.WithFields(logrus.Fields{"prec": prec, "n": len(xs), "gamma": gamma.Text('g', 10)}).Info("starting search")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := pslq.Run(ctx, xs, maxNorm, gamma, opts...)
	if err != nil {
		log.WithField("kind", fmt.Sprintf("%T", err)).Errorf("search failed: %v", err)
		return err
	}

	for _, w := range result.Warnings {
		log.WithField("kind", fmt.Sprintf("%T", w)).Warn(w)
	}
	log.Infof("completed %d rounds", result.Iterations)

	printResult(result, xs, prec)

	if plotPath := v.GetString("plot"); plotPath != "" {
		if err := plotHistory(result, plotPath); err != nil {
			log.WithError(err).Warn("failed to write convergence plot")
		} else {
			log.Infof("convergence plot written to %s", plotPath)
		}
	}
	return nil
}

func printResult(result *pslq.Result, xs []big.Float, prec uint) {
	digits := int(math.Log10(2)*float64(prec) + 1)
	if result.Relation == nil {
		fmt.Fprintln(stdout, "No relation found within the requested norm bound.")
		return
	}
	fmt.Fprintln(stdout, "Relation found:")
	for _, term := range result.Relation {
		fmt.Fprintf(stdout, "%d * %.*f\n", term.Coeff, digits, term.Value)
	}
}

func plotHistory(result *pslq.Result, path string) error {
	normBounds := make([]*big.Float, len(result.History))
	bestErrors := make([]*big.Float, len(result.History))
	for i, r := range result.History {
		normBounds[i] = r.NormBound
		bestErrors[i] = r.BestError
	}
	return diagnostics.NewHistory(normBounds, bestErrors).Plot(path)
}

// read parses one decimal literal per non-blank, non-comment line:
// lines starting with '#' are comments, blank lines are skipped.
func read(in io.Reader, xs []big.Float, prec uint) ([]big.Float, error) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		var x big.Float
		x.SetPrec(prec)
		if _, ok := x.SetString(text); !ok {
			return xs, fmt.Errorf("failed to parse line %q", text)
		}
		xs = append(xs, x)
	}
	if err := scanner.Err(); err != nil {
		return xs, fmt.Errorf("reading input: %w", err)
	}
	return xs, nil
}

// readFile reads name as a sequence of decimal literals. name == "-"
// reads from stdin.
func readFile(name string, xs []big.Float, prec uint) ([]big.Float, error) {
	if name == "-" {
		return read(stdin, xs, prec)
	}
	in, err := os.Open(name)
	if err != nil {
		return xs, fmt.Errorf("opening file %q: %w", name, err)
	}
	defer in.Close()
	return read(in, xs, prec)
}

// Command suffstack drives internal/harness's randomized append/pop/
// has_suffix mirroring loop from the command line, for ad-hoc soak testing
// and reproducing a failure by seed.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/datatrails/go-suffixstack/internal/harness"
	"github.com/datatrails/go-suffixstack/internal/obslog"
)

const envPrefix = "SUFFSTACK"

var cfg = harness.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "suffstack",
	Short: "Run randomized suffix-stack operations against the naive oracle",
}

func init() {
	rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
		return run()
	}
}

func initFlags() {
	flags := rootCmd.Flags()
	flags.Bool("no-log-config", false, "skip structured logger setup")
	flags.Bool("print-ops", false, "echo every generated operation")
	flags.Bool("print-vecs", false, "echo both stacks' contents after every op")
	flags.Uint64("max-push", cfg.MaxPush, "upper bound on the length of a single generated append")
	flags.Float64("pop-ratio", cfg.PopRatio, "probability in [0,1] of generating a pop")
	flags.Uint64("random-count", cfg.RandomCount, "number of randomized operations to run")
	flags.Int64("random-seed", cfg.RandomSeed, "seed for the harness's PRNG")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVar := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		_ = v.BindEnv(f.Name, envVar)
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func loadConfig(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	bindFlags(cmd, v)

	flags := cmd.Flags()
	cfg.NoLogConfig, _ = flags.GetBool("no-log-config")
	cfg.PrintOps, _ = flags.GetBool("print-ops")
	cfg.PrintVecs, _ = flags.GetBool("print-vecs")
	cfg.MaxPush, _ = flags.GetUint64("max-push")
	cfg.PopRatio, _ = flags.GetFloat64("pop-ratio")
	cfg.RandomCount, _ = flags.GetUint64("random-count")
	cfg.RandomSeed, _ = flags.GetInt64("random-seed")
}

func run() error {
	loadConfig(rootCmd)

	log := obslog.Noop()
	if !cfg.NoLogConfig {
		log = obslog.New("INFO", "suffstack")
	}

	result, err := harness.Run(cfg, log)
	if err != nil {
		return fmt.Errorf("harness run %s failed after %d operations: %w", result.RunID, result.Operations, err)
	}
	fmt.Printf("run %s: %d operations OK, final size %d\n", result.RunID, result.Operations, result.FinalSize)
	return nil
}

func main() {
	initFlags()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

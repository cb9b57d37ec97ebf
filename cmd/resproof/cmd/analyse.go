package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/resource-proof/proving"
)

var (
	analyseNonce    nonceFlags
	increase        bool
	maxDifficulty   uint8
	analyseParallel int
)

// analyseCmd represents the analyse command.
var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Measure the time to create and check proofs",
	Long: `analyse creates and validates a proof for the configured size and difficulty and reports
how long each took. With --increase it keeps going with the next difficulty, up to
--max-difficulty or until interrupted. Note this will likely not finish in your lifetime
without a limit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nonce, err := analyseNonce.resolve(logger, true)
		if err != nil {
			return err
		}

		last := cfg.Difficulty
		if increase {
			last = max(maxDifficulty, cfg.Difficulty)
		}

		rows, err := analyse(cmd.Context(), nonce, cfg.Difficulty, last, analyseParallel)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		report(cmd.OutOrStdout(), rows)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyseCmd)
	analyseNonce.bind(analyseCmd.Flags())
	analyseCmd.Flags().BoolVarP(&increase, "increase", "i", false, "continue with increasing difficulty")
	analyseCmd.Flags().Uint8Var(&maxDifficulty, "max-difficulty", math.MaxUint8, "last difficulty to analyse with --increase")
	analyseCmd.Flags().IntVar(&analyseParallel, "parallel", 1, "number of difficulties analysed concurrently (0 - number of CPUs)")
}

type analysis struct {
	difficulty uint8
	key        uint64
	create     time.Duration
	check      time.Duration
	valid      bool
}

// analyse proves and validates every difficulty in [first, last]. It returns the results
// gathered so far, in difficulty order, even if it fails or gets interrupted.
func analyse(ctx context.Context, nonce []byte, first, last uint8, parallel int) ([]analysis, error) {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]*analysis, int(last)-int(first)+1)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i := range results {
		d := first + uint8(i)
		i := i
		eg.Go(func() error {
			res, err := analyseOne(ctx, nonce, d)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := eg.Wait()

	rows := make([]analysis, 0, len(results))
	for _, res := range results {
		if res != nil {
			rows = append(rows, *res)
		}
	}
	return rows, err
}

func analyseOne(ctx context.Context, nonce []byte, difficulty uint8) (*analysis, error) {
	analyseCfg := cfg
	analyseCfg.Difficulty = difficulty
	spec, err := proving.NewSpecFromConfig(analyseCfg)
	if err != nil {
		return nil, err
	}

	logger := logger.With(zap.Uint8("difficulty", difficulty))
	start := time.Now()
	proof, err := proving.Generate(ctx, spec, nonce, proving.WithLogger(logger), proving.WithConfig(analyseCfg))
	if err != nil {
		return nil, err
	}
	create := time.Since(start)

	start = time.Now()
	failures := validateProof(spec, nonce, proof, logger)
	check := time.Since(start)
	for _, msg := range failures {
		logger.Warn("cli: " + msg)
	}

	logger.Info("cli: analysis completed", zap.Duration("create", create), zap.Duration("check", check))
	return &analysis{
		difficulty: difficulty,
		key:        proof.Key,
		create:     create,
		check:      check,
		valid:      len(failures) == 0,
	}, nil
}

func report(w io.Writer, rows []analysis) {
	cpuModel := "unknown"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		cpuModel = info[0].ModelName
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		cores = runtime.NumCPU()
	}
	fmt.Fprintf(w, "\n\nANALYSIS: size=%v, cpu=%v (%d threads)\n", bytefmt.ByteSize(cfg.MinSize), cpuModel, cores)

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		result := "ok"
		if !row.valid {
			result = "VIOLATION"
		}
		data = append(data, []string{
			strconv.Itoa(int(row.difficulty)),
			strconv.FormatUint(row.key, 10),
			strconv.FormatUint(proving.Difficulty(row.difficulty).ExpectedSteps(), 10),
			bytefmt.ByteSize(cfg.MinSize + row.key),
			row.create.Round(time.Millisecond).String(),
			row.check.Round(time.Millisecond).String(),
			result,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"difficulty", "key", "expected", "proof size", "create", "check", "result"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/topsmart20/solidity/internal/gas"
	"github.com/topsmart20/solidity/internal/report"
)

var gasCmd = &cobra.Command{
	Use:   "gas <fixture.toml>...",
	Short: "Estimate the worst-case gas cost of an assembly item fixture",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGas,
}

func init() {
	gasCmd.Flags().String("format", "pretty", "output format (pretty|msgpack)")
}

type gasFixtureResult struct {
	path   string
	costs  []gas.GasConsumption
	total  gas.GasConsumption
	errStr string
}

// runGas estimates each fixture's total cost independently; fixtures
// never share state, so they're processed concurrently (§5: parallelism
// only across independent units, never within one analysis).
func runGas(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	results := make([]gasFixtureResult, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			results[i] = estimateFixture(path)
			return nil
		})
	}
	_ = g.Wait() // per-fixture errors are carried in the result, not propagated

	switch format {
	case "msgpack":
		return emitGasMsgpack(results)
	default:
		emitGasPretty(results)
	}

	for _, r := range results {
		if r.errStr != "" || r.total.Infinite {
			return fmt.Errorf("gas estimation found unbounded or invalid fixtures")
		}
	}
	return nil
}

func estimateFixture(path string) gasFixtureResult {
	fixture, err := loadGasFixture(path)
	if err != nil {
		return gasFixtureResult{path: path, errStr: err.Error()}
	}
	schedule, err := fixture.schedule()
	if err != nil {
		return gasFixtureResult{path: path, errStr: err.Error()}
	}
	items, err := fixture.items()
	if err != nil {
		return gasFixtureResult{path: path, errStr: err.Error()}
	}

	meter := gas.NewMeter(schedule, gas.NewKnownState())
	costs := make([]gas.GasConsumption, 0, len(items))
	total := gas.Known(0)
	for _, item := range items {
		c := meter.EstimateMax(item)
		costs = append(costs, c)
		total = total.Add(c)
	}
	return gasFixtureResult{path: path, costs: costs, total: total}
}

func emitGasPretty(results []gasFixtureResult) {
	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	if mode, err := rootCmd.PersistentFlags().GetString("color"); err == nil {
		switch mode {
		case "on":
			useColor = true
		case "off":
			useColor = false
		}
	}
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	if useColor {
		bold.EnableColor()
		red.EnableColor()
	} else {
		bold.DisableColor()
		red.DisableColor()
	}
	for _, r := range results {
		bold.Printf("%s\n", r.path)
		if r.errStr != "" {
			red.Printf("  error: %s\n", r.errStr)
			continue
		}
		for i, c := range r.costs {
			fmt.Printf("  [%d] %s\n", i, c)
		}
		if r.total.Infinite {
			red.Printf("  total: inf\n")
		} else {
			fmt.Printf("  total: %s\n", r.total)
		}
	}
}

func emitGasMsgpack(results []gasFixtureResult) error {
	for _, r := range results {
		if r.errStr != "" {
			return fmt.Errorf("%s: %s", r.path, r.errStr)
		}
		rep := report.New(nil, r.costs)
		if err := rep.Encode(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// ABOUTME: CLI entry point for running benchmark scenarios and printing results
// ABOUTME: Reporting collaborator only; it never touches collector internals

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/prateek/gcbench"
	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/scenario"
	"github.com/prateek/gcbench/strategy"
)

var (
	scenarioFlag = &cli.StringFlag{
		Name:  "scenario",
		Usage: "scenario to run (see 'gcbench list')",
		Value: "batch",
	}
	strategyFlag = &cli.StringFlag{
		Name:  "strategy",
		Usage: "memory-management strategy variant",
		Value: "marksweep",
	}
	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "total number of objects per scenario",
		Value: scenario.DefaultParams.Count,
	}
	payloadFlag = &cli.IntFlag{
		Name:  "payload",
		Usage: "payload bytes per object",
		Value: scenario.DefaultParams.PayloadSize,
	}
)

func main() {
	app := &cli.App{
		Name:    "gcbench",
		Usage:   "benchmark memory-management strategies over object-graph scenarios",
		Version: gcbench.Version,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run one scenario under one strategy",
				Flags:  []cli.Flag{scenarioFlag, strategyFlag, countFlag, payloadFlag},
				Action: runOne,
			},
			{
				Name:   "matrix",
				Usage:  "run every scenario under every strategy",
				Flags:  []cli.Flag{countFlag, payloadFlag},
				Action: runMatrix,
			},
			{
				Name:   "list",
				Usage:  "list registered scenarios and strategies",
				Action: list,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gcbench:", err)
		os.Exit(1)
	}
}

func params(ctx *cli.Context) scenario.Params {
	return scenario.Params{
		Count:       ctx.Int("count"),
		PayloadSize: ctx.Int("payload"),
	}
}

func runOne(ctx *cli.Context) error {
	counters := metrics.NewCounters()
	strat, err := strategy.New(ctx.String("strategy"), counters)
	if err != nil {
		return fmt.Errorf("%w: %q", err, ctx.String("strategy"))
	}

	res, err := scenario.Run(ctx.String("scenario"), strat, counters, params(ctx))
	if err != nil {
		return err
	}

	w := newTable()
	printHeader(w)
	printResult(w, res)
	return w.Flush()
}

func runMatrix(ctx *cli.Context) error {
	w := newTable()
	printHeader(w)

	for _, scen := range scenario.Names() {
		for _, name := range strategy.Names() {
			counters := metrics.NewCounters()
			strat, err := strategy.New(name, counters)
			if err != nil {
				return err
			}
			res, err := scenario.Run(scen, strat, counters, params(ctx))
			if err != nil {
				return err
			}
			printResult(w, res)
		}
	}
	return w.Flush()
}

func list(ctx *cli.Context) error {
	fmt.Println("scenarios:")
	for _, name := range scenario.Names() {
		fmt.Println("  " + name)
	}
	fmt.Println("strategies:")
	for _, name := range strategy.Names() {
		fmt.Println("  " + name)
	}
	return nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printHeader(w *tabwriter.Writer) {
	fmt.Fprintln(w, "SCENARIO\tSTRATEGY\tALLOCS\tFREES\tLEAKED\tELAPSED")
}

func printResult(w *tabwriter.Writer, r scenario.Result) {
	fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
		r.Scenario, r.Strategy, r.Allocations, r.Frees,
		humanize.Bytes(uint64(r.LeakedBytes)), r.Elapsed)
}

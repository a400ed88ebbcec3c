// Command daisy is a thin, runnable shell around the driver package: one
// line of output per function, exit code 0 on success or non-zero if any
// function's analysis failed. Parsing a real source language and deriving
// per-function specs is out of scope; by default this shell instead runs
// the fixed set of benchmark functions driver.Benchmarks() exposes, which
// is enough to exercise the whole analyzer end to end. Passing --expr (with
// --preconditions) swaps that fixed set for a single function parsed from
// the command line, via the toy expression parser in parse.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smohebbi/daisy-go/config"
	"github.com/smohebbi/daisy-go/driver"
	"github.com/smohebbi/daisy-go/precision"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("daisy", flag.ContinueOnError)
	precName := fs.String("precision", "float64", "float32 | float64 | doubledouble | fixed:N")
	rangeMethod := fs.String("range-method", "interval", "interval | affine | smt")
	errorMethod := fs.String("error-method", "affine", "interval | affine")
	noInitial := fs.Bool("no-initial-errors", false, "disable input-error tracking")
	noRoundoff := fs.Bool("no-roundoff", false, "disable per-operator roundoff accounting")
	only := fs.String("function", "", "analyze only this benchmark (default: all)")
	exprSrc := fs.String("expr", "", "analyze this expression instead of the built-in benchmarks (requires --preconditions)")
	preconditionsPath := fs.String("preconditions", "", "path to a JSON file mapping variable names to [lo, hi] ranges, for --expr")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	prec, err := parsePrecision(*precName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "daisy:", err)
		return 2
	}

	opts := config.Options{
		RangeMethod:        parseRangeMethod(*rangeMethod),
		ErrorMethod:        parseErrorMethod(*errorMethod),
		Precision:          prec,
		ConstantsPrecision: prec,
		NoInitialErrors:    *noInitial,
		NoRoundoff:         *noRoundoff,
	}

	var specs []driver.FunctionSpec
	if *exprSrc != "" {
		if *preconditionsPath == "" {
			fmt.Fprintln(os.Stderr, "daisy: --expr requires --preconditions")
			return 2
		}
		expr, inputRanges, err := parseExprSpec(*exprSrc, *preconditionsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "daisy:", err)
			return 2
		}
		specs = []driver.FunctionSpec{{
			Name:        "expr",
			Expr:        expr,
			InputRanges: inputRanges,
			Options:     opts,
		}}
	} else {
		for _, bm := range driver.Benchmarks() {
			if *only != "" && bm.Name != *only {
				continue
			}
			specs = append(specs, driver.FunctionSpec{
				Name:        bm.Name,
				Expr:        bm.Expr,
				InputRanges: bm.InputRanges,
				Options:     opts,
			})
		}
		if len(specs) == 0 {
			fmt.Fprintf(os.Stderr, "daisy: no benchmark named %q\n", *only)
			return 2
		}
	}

	results, err := driver.AnalyzeAll(context.Background(), specs, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "daisy:", err)
		return 1
	}
	for _, r := range results {
		fmt.Println(r.String())
	}
	if driver.AnyFailed(results) {
		return 1
	}
	return 0
}

func parsePrecision(s string) (precision.Precision, error) {
	switch {
	case s == "float32":
		return precision.NewFloat32(), nil
	case s == "float64":
		return precision.NewFloat64(), nil
	case s == "doubledouble":
		return precision.NewDoubleDouble(), nil
	case strings.HasPrefix(s, "fixed:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "fixed:"))
		if err != nil || n < 0 {
			return precision.Precision{}, fmt.Errorf("invalid fixed-point width %q", s)
		}
		return precision.NewFixed(uint(n)), nil
	default:
		return precision.Precision{}, fmt.Errorf("unknown precision %q", s)
	}
}

func parseRangeMethod(s string) config.RangeMethod {
	switch s {
	case "affine":
		return config.RangeAffine
	case "smt":
		return config.RangeSMT
	default:
		return config.RangeInterval
	}
}

func parseErrorMethod(s string) config.ErrorMethod {
	switch s {
	case "interval":
		return config.ErrorInterval
	default:
		return config.ErrorAffine
	}
}

// Command generate-golden writes testdata/golden.json, the reference set of
// netlists and their exact equivalent resistances used by the netlist tests.
//
// Expected values come from an exact rational oracle (math/big.Rat) rather
// than the float64 evaluator under test, then rounded once to float64.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/logging"
	"github.com/agbru/rescalc/internal/netlist"
)

type goldenFile struct {
	Description string       `json:"description"`
	Cases       []goldenCase `json:"cases"`
}

type goldenCase struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Netlist  any    `json:"netlist"`
}

type namedTree struct {
	name string
	tree circuit.Node
}

var (
	R = circuit.R
	S = circuit.S
	P = circuit.P
)

func goldenTrees() []namedTree {
	return []namedTree{
		{"single resistor", R(123.4)},
		{"series of three", S(R(10), R(20), R(30))},
		{"two in parallel", P(R(100), R(300))},
		{"series with parallel pair", S(R(100), P(R(200), R(200)), R(70))},
		{"three equal in parallel", P(R(3), R(3), R(3))},
		{"one third ohm", P(R(1), R(1), R(1))},
		{"reciprocal sum", P(R(4), R(12), R(6))},
		{"ladder", S(R(1000), P(R(2000), S(R(1000), P(R(2000), R(2000)))))},
		{"short circuit", P(R(0), R(100))},
		{"open circuit", P()},
		{"empty series is a wire", S()},
		{"open branch in series", S(P(), R(5))},
		{"open branch in parallel", P(P(), R(40))},
		{"wire branch in parallel", P(S(), R(5))},
		{"fractional values", S(R(0.1), R(0.2), P(R(0.5), R(1.5)))},
		{"large values", P(R(1e9), R(1e9), S(R(4.7e6), R(3.3e5)))},
	}
}

// oracle evaluates n exactly. A nil result means an open circuit.
func oracle(n circuit.Node) *big.Rat {
	switch v := n.(type) {
	case circuit.Resistor:
		return new(big.Rat).SetFloat64(v.Value)
	case circuit.Series:
		sum := new(big.Rat)
		for _, c := range v.Children {
			r := oracle(c)
			if r == nil {
				return nil
			}
			sum.Add(sum, r)
		}
		return sum
	case circuit.Parallel:
		inv := new(big.Rat)
		finite := 0
		for _, c := range v.Children {
			r := oracle(c)
			if r == nil {
				continue
			}
			if r.Sign() == 0 {
				return new(big.Rat)
			}
			inv.Add(inv, new(big.Rat).Inv(r))
			finite++
		}
		if finite == 0 {
			return nil
		}
		return inv.Inv(inv)
	}
	panic(fmt.Sprintf("unexpected node %T", n))
}

func expected(n circuit.Node) string {
	r := oracle(n)
	if r == nil {
		return "inf"
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func build(trees []namedTree) (goldenFile, error) {
	out := goldenFile{
		Description: "Reference netlists with equivalent resistances from an exact rational oracle",
	}
	for _, nt := range trees {
		doc, err := netlist.ToWire(nt.tree)
		if err != nil {
			return goldenFile{}, fmt.Errorf("case %q: %w", nt.name, err)
		}
		out.Cases = append(out.Cases, goldenCase{Name: nt.name, Expected: expected(nt.tree), Netlist: doc})
	}
	return out, nil
}

// generate builds the golden cases and writes them to outPath.
func generate(outPath string, logger logging.Logger) error {
	data, err := build(goldenTrees())
	if err != nil {
		return fmt.Errorf("building golden data: %w", err)
	}

	file, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	file = append(file, '\n')

	if err := os.WriteFile(outPath, file, 0o644); err != nil {
		return fmt.Errorf("writing golden file: %w", err)
	}
	logger.Info("golden file generated",
		logging.String("path", outPath),
		logging.Int("cases", len(data.Cases)),
		logging.Uint64("bytes", uint64(len(file))))
	return nil
}

func main() {
	outPath := flag.String("out", "testdata/golden.json", "destination file")
	flag.Parse()

	logger := logging.NewLogger(os.Stderr, "generate-golden")
	if err := generate(*outPath, logger); err != nil {
		logger.Error("golden generation failed", err, logging.String("path", *outPath))
		os.Exit(1)
	}
}

// Command scenario runs simulation cycles from the terminal and prints the
// results as JSON, without starting the HTTP service.
//
// Usage:
//
//	go run ./cmd/scenario -list
//	go run ./cmd/scenario -demo demo1
//	go run ./cmd/scenario -tempo
//	go run ./cmd/scenario -challenge short_term_forecast
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/skyquorum/climate-oracle/internal/catalog"
	"github.com/skyquorum/climate-oracle/internal/domain"
	"github.com/skyquorum/climate-oracle/internal/engine"
	"github.com/skyquorum/climate-oracle/internal/observability"
	"github.com/skyquorum/climate-oracle/internal/registry"
	"github.com/skyquorum/climate-oracle/internal/subnet"
)

func main() {
	list := flag.Bool("list", false, "list available demo scenarios")
	demo := flag.String("demo", "", "run a demo scenario by key")
	tempo := flag.Bool("tempo", false, "run one full tempo cycle")
	challenge := flag.String("challenge", "", "run a single challenge for a task type")
	emission := flag.Float64("emission", 1.0, "total emission per tempo in TAO")
	flag.Parse()

	if err := run(*list, *demo, *tempo, *challenge, *emission); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(list bool, demo string, tempo bool, challenge string, emission float64) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.New(emission, 100)
	if err := registry.Seed(reg, cat); err != nil {
		return fmt.Errorf("seed registry: %w", err)
	}
	orch := subnet.New(engine.New(cat), reg, logger, observability.NewMetricsForTesting(), nil)

	switch {
	case list:
		return printJSON(orch.Scenarios())

	case demo != "":
		result, err := orch.RunDemoScenario(demo)
		if err != nil {
			return err
		}
		return printJSON(result)

	case tempo:
		cycle, err := orch.RunTempoCycle(context.Background())
		if err != nil {
			return err
		}
		return printJSON(cycle)

	case challenge != "":
		validators := reg.ActiveValidators()
		if len(validators) == 0 {
			return subnet.ErrNoValidators
		}
		result, err := orch.RunChallenge(context.Background(), validators[0].UID, domain.TaskType(challenge), nil)
		if err != nil {
			return err
		}
		return printJSON(result)

	default:
		flag.Usage()
		return nil
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Command simulate opens a case many times against an in-memory store and
// compares the observed drop frequencies with the configured odds.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/CaseSim_Go/internal/catalog"
	"github.com/osse101/CaseSim_Go/internal/concurrency"
	"github.com/osse101/CaseSim_Go/internal/database/memory"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/economy"
	"github.com/osse101/CaseSim_Go/internal/lootbox"
	"github.com/osse101/CaseSim_Go/internal/reveal"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// Report holds the observed counts for one case
type Report struct {
	Case     domain.CaseDefinition
	Runs     int
	Counts   map[string]int
	Expected []lootbox.DropOdds
	GoldLeft int64
}

func main() {
	caseID := flag.String("case", "sharp", "case to open")
	runs := flag.Int("n", 100000, "number of openings")
	seed := flag.Uint64("seed", 1, "random seed")
	catalogPath := flag.String("catalog", "", "catalog file (embedded default when empty)")
	flag.Parse()

	// Per-opening service logs would drown the report
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := simulate(context.Background(), *catalogPath, *caseID, *runs, *seed)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	if err := printReport(os.Stdout, report); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

// simulate funds exactly enough gold for runs openings so every opening is
// paid for through the real workflow
func simulate(ctx context.Context, catalogPath, caseID string, runs int, seed uint64) (*Report, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("%w: run count must be positive", domain.ErrInvalidInput)
	}

	cat, err := catalog.Load(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	def, err := cat.Case(caseID)
	if err != nil {
		return nil, err
	}

	start := domain.EconomyState{Gold: def.Price * int64(runs), Inventory: []domain.Item{}}
	store := economy.NewStore(memory.NewKVRepository(), start)

	svc := lootbox.NewService(cat, store, concurrency.NewInFlight(), reveal.NewScheduler(0), nil, utils.NewSeededSource(seed))
	defer svc.Shutdown()

	expected, err := svc.Odds(caseID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(def.Drops))
	for i := 0; i < runs; i++ {
		pending, err := svc.OpenCase(ctx, caseID)
		if err != nil {
			return nil, fmt.Errorf("opening %d: %w", i+1, err)
		}
		o, err := pending.Wait(ctx)
		if err != nil {
			return nil, err
		}
		counts[o.Item.ID]++
	}

	return &Report{
		Case:     def,
		Runs:     runs,
		Counts:   counts,
		Expected: expected,
		GoldLeft: store.Balances().Gold,
	}, nil
}

func printReport(w io.Writer, r *Report) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%s (%s): %d openings for %d %s\n\n",
		r.Case.Name, r.Case.ID, r.Runs, r.Case.Price*int64(r.Runs), r.Case.Currency); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "item\trarity\tcount\tobserved\texpected\t")
	for _, d := range r.Expected {
		n := r.Counts[d.Item.ID]
		observed := float64(n) / float64(r.Runs)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.4f\t\n",
			d.Item.ID, d.Item.Rarity, p.Sprintf("%d", n), observed, d.Probability)
	}
	return tw.Flush()
}

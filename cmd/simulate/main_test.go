package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/domain"
)

func TestSimulate_ObservedOddsConverge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo run in short mode")
	}

	report, err := simulate(context.Background(), "", "sharp", 20000, 42)
	require.NoError(t, err)

	total := 0
	for _, n := range report.Counts {
		total += n
	}
	assert.Equal(t, 20000, total)
	assert.Equal(t, int64(0), report.GoldLeft, "every opening was paid for")

	for _, d := range report.Expected {
		observed := float64(report.Counts[d.Item.ID]) / float64(report.Runs)
		assert.InDelta(t, d.Probability, observed, 0.015, "item %s", d.Item.ID)
	}
}

func TestSimulate_Errors(t *testing.T) {
	_, err := simulate(context.Background(), "", "sharp", 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = simulate(context.Background(), "", "missing", 10, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownCase)
}

func TestPrintReport(t *testing.T) {
	report, err := simulate(context.Background(), "", "sharp", 50, 7)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "50 openings for 5,000 gold")
	assert.Contains(t, out, "expected")
	assert.Contains(t, out, "0.8400")
}

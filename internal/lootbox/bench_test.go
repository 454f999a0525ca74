package lootbox

import (
	"context"
	"math"
	"testing"

	"github.com/osse101/CaseSim_Go/internal/catalog"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

func BenchmarkResolve(b *testing.B) {
	cat, err := catalog.Load(context.Background(), "")
	if err != nil {
		b.Fatal(err)
	}
	def, _ := cat.Case("sharp")
	src := utils.NewSeededSource(1)
	state := domain.EconomyState{Gold: math.MaxInt64 / 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Resolve(def, state, src.Float64()*100, cat.IsNothing); err != nil {
			b.Fatal(err)
		}
	}
}

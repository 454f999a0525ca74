package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInt64From_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		draw     float64
		min, max int64
		expected int64
	}{
		{"lowest draw gives min", 0, 500, 1500, 500},
		{"highest draw gives max", 0.9999999999, 500, 1500, 1500},
		{"draw of exactly one clamps to max", 1.0, 100, 400, 400},
		{"midpoint", 0.5, 0, 9, 5},
		{"inverted range returns min", 0.7, 10, 5, 10},
		{"single value range", 0.3, 7, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RandomInt64From(FixedSource(tt.draw), tt.min, tt.max)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRandomInt64From_StaysInRange(t *testing.T) {
	src := NewSeededSource(42)
	for i := 0; i < 10000; i++ {
		v := RandomInt64From(src, 200, 1999)
		assert.GreaterOrEqual(t, v, int64(200))
		assert.LessOrEqual(t, v, int64(1999))
	}
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := NewSeededSource(7)
	b := NewSeededSource(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestFixedSource_RepeatsLast(t *testing.T) {
	src := FixedSource(0.1, 0.2)
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.2, src.Float64())
	assert.Equal(t, 0.2, src.Float64())

	assert.Equal(t, 0.0, FixedSource().Float64())
}

func TestRandomInt(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomInt(1, 3)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
	}
	assert.Equal(t, 5, RandomInt(5, 1))
}

func TestRandomSources_InUnitInterval(t *testing.T) {
	for _, src := range []RandomSource{NewRandomSource(), NewSeededSource(1)} {
		for i := 0; i < 1000; i++ {
			v := src.Float64()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestLockedSource_ConcurrentDraws(t *testing.T) {
	src := NewLockedSource(NewSeededSource(7))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := src.Float64()
				assert.GreaterOrEqual(t, v, 0.0)
				assert.Less(t, v, 1.0)
			}
		}()
	}
	wg.Wait()
}

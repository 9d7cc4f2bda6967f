package focal_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/thetafocal/focal"
)

func benchmarkCompose(b *testing.B, opts ...focal.Option) {
	rng := rand.New(rand.NewSource(42))
	tg, start, goal := randomScene(b, rng, 64, 64, 0.3)
	c, _ := focal.NewComposer(tg, opts...)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Compose(start, goal)
	}
}

// BenchmarkCompose_Sequential labels one 64×64 sample with back-to-back searches.
func BenchmarkCompose_Sequential(b *testing.B) { benchmarkCompose(b) }

// BenchmarkCompose_Concurrent runs the two searches on separate goroutines.
func BenchmarkCompose_Concurrent(b *testing.B) { benchmarkCompose(b, focal.WithConcurrentSearch()) }

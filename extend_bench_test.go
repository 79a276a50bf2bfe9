package sparseknn

import (
	"context"
	"testing"
)

func BenchmarkExtend(b *testing.B) {
	ctx := context.Background()
	rr, qq, qr := buildFixture(b, 200, 50, 1)

	b.Run("Serial", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := Extend(ctx, rr, qq, qr, 5, WithNumWorkers(1)); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := Extend(ctx, rr, qq, qr, 5); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkLowerRank(b *testing.B) {
	ctx := context.Background()
	rr, qq, qr := buildFixture(b, 200, 50, 1)

	extended, err := Extend(ctx, rr, qq, qr, 10)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := LowerRank(ctx, extended, 250, 3); err != nil {
			b.Fatal(err)
		}
	}
}

//go:build bench

package mdxblog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 4, 8} {
		b.Run(fmt.Sprintf("workers_%d", w), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

// BenchmarkRendererPool_AcquireRelease measures a warm acquire/release cycle.
func BenchmarkRendererPool_AcquireRelease(b *testing.B) {
	for _, size := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			create, _ := countingFactory()
			pool := newRendererPool(size, create)
			defer func() { _ = pool.Close() }()
			ctx := context.Background()

			r, err := pool.Acquire(ctx)
			if err != nil {
				b.Fatal(err)
			}
			pool.Release(r)

			b.ReportAllocs()
			for b.Loop() {
				r, _ := pool.Acquire(ctx)
				pool.Release(r)
			}
		})
	}
}

// BenchmarkRendererPool_Contention runs more goroutines than renderers.
func BenchmarkRendererPool_Contention(b *testing.B) {
	for _, g := range []int{4, 16, 32} {
		b.Run(fmt.Sprintf("goroutines_%d", g), func(b *testing.B) {
			create, _ := countingFactory()
			pool := newRendererPool(4, create)
			defer func() { _ = pool.Close() }()
			ctx := context.Background()

			b.ReportAllocs()
			for b.Loop() {
				var wg sync.WaitGroup
				for range g {
					wg.Go(func() {
						r, err := pool.Acquire(ctx)
						if err == nil {
							pool.Release(r)
						}
					})
				}
				wg.Wait()
			}
		})
	}
}

// BenchmarkLoad compiles a tree of posts with varying worker counts.
func BenchmarkLoad(b *testing.B) {
	files := make(map[string]string, 32)
	for i := range 32 {
		files[fmt.Sprintf("post-%02d.mdx", i)] = strings.Replace(firstPost, "title: First", fmt.Sprintf("title: Post %d", i), 1)
	}
	fsys := newTree(b, files)

	for _, w := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers_%d", w), func(b *testing.B) {
			s, err := New(WithConfig(testConfig(b)), WithFS(fsys), WithWorkers(w))
			if err != nil {
				b.Fatal(err)
			}
			defer func() { _ = s.Close() }()

			b.ReportAllocs()
			for b.Loop() {
				if err := s.Load(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

package metaecs

import (
	"fmt"
	"testing"
)

func BenchmarkDispatch(b *testing.B) {
	sizes := []int{10, 100, 1000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("2roles_%d", size), func(b *testing.B) {
			calls := 0
			s := NewSystem(Roles{"a": {"bench_x"}, "b": {"bench_y"}}, func(Match) { calls++ })
			for i := range size {
				_ = s.Register(NewEntity(Attributes{"bench_x": i}))
			}
			_ = s.Register(NewEntity(Attributes{"bench_y": 0}))
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, _ = s.Dispatch()
			}
		})
	}
}

func BenchmarkAdd(b *testing.B) {
	sizes := []int{1, 10, 100}
	for _, systems := range sizes {
		b.Run(fmt.Sprintf("%dsystems", systems), func(b *testing.B) {
			m := New()
			for range systems {
				_, _ = m.Add(NewSystem(Roles{"a": {"bench_x"}, "b": {"bench_x", "bench_y"}}, noop).Entity)
			}
			ents := make([]*Entity, 1000)
			for i := range ents {
				ents[i] = NewEntity(Attributes{"bench_x": i, "bench_y": i})
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, e := range ents {
					_, _ = m.Add(e)
				}
				for _, e := range ents {
					_, _ = m.Remove(e)
				}
			}
		})
	}
}

func BenchmarkSetAttribute(b *testing.B) {
	m := New()
	for range 10 {
		_, _ = m.Add(NewSystem(Roles{"a": {"bench_x", "bench_y"}}, noop).Entity)
	}
	e, _ := m.Add(NewEntity(Attributes{"bench_x": 0}))
	b.ReportAllocs()
	for b.Loop() {
		e.Set("bench_y", 1)
		e.Delete("bench_y")
	}
}

func BenchmarkUpdate(b *testing.B) {
	m := New()
	for range 10 {
		_, _ = m.Add(NewSystem(Roles{"body": {"bench_x", "bench_y"}}, noop).Entity)
	}
	for i := range 1000 {
		_, _ = m.Add(NewEntity(Attributes{"bench_x": i, "bench_y": i}))
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Update()
	}
}

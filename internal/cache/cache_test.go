package cache

import (
	"sync"
	"testing"
)

func TestShardedGetSet(t *testing.T) {
	c := NewSharded[uint32, string](0, Uint32Hasher)
	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache succeeded")
	}
	c.Set(1, "a")
	c.Set(1, "b")
	if v, ok := c.Get(1); !ok || v != "b" {
		t.Errorf("Get(1) = %q, %v, want b", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if s := c.Stats(); s.Capacity != DefaultCapacity || s.TotalCapacity != DefaultCapacity*DefaultShardCount {
		t.Errorf("capacity %d/%d", s.Capacity, s.TotalCapacity)
	}
}

func TestShardedEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSharded[uint32, int](2, Uint32Hasher)
	// 1, 17 and 33 share a shard.
	c.Set(1, 1)
	c.Set(17, 17)
	c.Set(2, 2) // other shard, no effect
	c.Get(1)
	c.Set(33, 33)

	if _, ok := c.Get(17); ok {
		t.Error("entry 17 survived eviction")
	}
	for _, k := range []uint32{1, 2, 33} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d was evicted", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestShardedDeleteAndClear(t *testing.T) {
	c := NewSharded[uint32, int](4, Uint32Hasher)
	c.Set(1, 1)
	c.Set(2, 2)
	if !c.Delete(1) || c.Delete(1) {
		t.Error("Delete did not report presence")
	}
	c.Set(3, 3)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	// Deleted and cleared slots are reusable.
	c.Set(1, 10)
	if v, _ := c.Get(1); v != 10 {
		t.Errorf("Get(1) = %d after reuse", v)
	}
}

func TestShardedStats(t *testing.T) {
	c := NewSharded[uint32, int](4, Uint32Hasher)
	c.Set(1, 1)
	c.Get(1)
	c.Get(1)
	c.Get(9)

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("stats = %+v", s)
	}
	if r := s.HitRate(); r < 0.66 || r > 0.67 {
		t.Errorf("HitRate = %v", r)
	}
	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 || s.HitRate() != 0 {
		t.Errorf("stats after reset = %+v", s)
	}
}

func TestShardCapacity(t *testing.T) {
	tests := []struct{ total, want int }{
		{0, 1},
		{1, 1},
		{16, 1},
		{17, 2},
		{256, 16},
	}
	for _, tt := range tests {
		if got := ShardCapacity(tt.total); got != tt.want {
			t.Errorf("ShardCapacity(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestShardedConcurrent(t *testing.T) {
	c := NewSharded[uint32, uint32](64, Uint32Hasher)
	var wg sync.WaitGroup
	for g := range uint32(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range uint32(100) {
				k := g*100 + i
				c.Set(k, k)
				c.Get(k)
			}
		}()
	}
	wg.Wait()
	if c.Len() != 800 {
		t.Errorf("Len = %d, want 800", c.Len())
	}
}

func TestLRUList(t *testing.T) {
	var l lruList[int]
	if _, ok := l.RemoveOldest(); ok {
		t.Fatal("RemoveOldest on empty list")
	}
	n1 := l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)
	l.MoveToFront(n1) // order 1 3 2

	if k, _ := l.RemoveOldest(); k != 2 {
		t.Errorf("oldest = %d, want 2", k)
	}
	l.Remove(n1)
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
	if k, _ := l.RemoveOldest(); k != 3 {
		t.Errorf("oldest = %d, want 3", k)
	}
	if l.head != nil || l.tail != nil {
		t.Error("empty list keeps nodes")
	}
}

package utils

import (
	"sync"
	"testing"
	"time"
)

func TestHealthStatusSnapshot(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	setHealthStatus(HealthStatus{Mongo: true, HoldCache: false, CheckedAt: at})

	got := GetHealthStatus()
	if !got.Mongo || got.HoldCache {
		t.Errorf("snapshot %+v, want mongo up and hold cache down", got)
	}
	if !got.CheckedAt.Equal(at) {
		t.Errorf("checked at %v, want %v", got.CheckedAt, at)
	}
}

func TestHealthStatusConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(up bool) {
			defer wg.Done()
			setHealthStatus(HealthStatus{Mongo: up, HoldCache: up, CheckedAt: time.Now()})
			_ = GetHealthStatus()
		}(i%2 == 0)
	}
	wg.Wait()
}

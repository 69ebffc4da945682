// SPDX-License-Identifier: BSD-3-Clause

package appstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/At1ass/tt-riingd/pkg/mapping"
)

func TestSampleCacheStartsEmpty(t *testing.T) {
	s := New(nil, nil, nil, mapping.New())
	assert.Empty(t, s.SampleCache())
}

func TestReplaceSampleCacheIsVisibleToReaders(t *testing.T) {
	s := New(nil, nil, nil, mapping.New())

	s.ReplaceSampleCache(map[string]float32{"cpu": 65.0})

	got := s.SampleCache()
	assert.Equal(t, float32(65.0), got["cpu"])
}

func TestSampleCacheReturnsDefensiveCopy(t *testing.T) {
	s := New(nil, nil, nil, mapping.New())
	s.ReplaceSampleCache(map[string]float32{"cpu": 65.0})

	got := s.SampleCache()
	got["cpu"] = 999

	assert.Equal(t, float32(65.0), s.SampleCache()["cpu"])
}

func TestReplaceMappingsIsVisibleToReaders(t *testing.T) {
	s := New(nil, nil, nil, mapping.New())

	next := mapping.New()
	next.LoadColorMappings(map[string][]mapping.FanRef{"red": {{Controller: 0, Channel: 0}}})
	s.ReplaceMappings(next)

	assert.Same(t, next, s.Mappings())
}

func TestConcurrentReplaceAndReadDoesNotRace(t *testing.T) {
	s := New(nil, nil, nil, mapping.New())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.ReplaceSampleCache(map[string]float32{"cpu": float32(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.SampleCache()
		}
	}()
	wg.Wait()
}

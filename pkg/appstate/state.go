// SPDX-License-Identifier: BSD-3-Clause

package appstate

import (
	"maps"
	"sync"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/mapping"
	"github.com/At1ass/tt-riingd/pkg/tempsource"
)

// State is the shared handle the coordinator builds once during
// initialize and every service thereafter reads from or writes through.
// The controller set and the sensor slice are fixed for the state's
// lifetime; nothing replaces them, and a ColdRestart verdict leaves them
// as they are. The mapping index is replaced on a HotReload and the
// sample cache after every monitoring tick, each as a whole swap under
// the write lock.
type State struct {
	mu sync.RWMutex

	configManager *config.Manager
	controllers   *controller.Set
	sensors       []tempsource.Sensor
	mappings      *mapping.Index
	sampleCache   map[string]float32
}

// New builds a State from the components assembled during the
// coordinator's initialize transition. The sample cache starts empty.
func New(configManager *config.Manager, controllers *controller.Set, sensors []tempsource.Sensor, mappings *mapping.Index) *State {
	return &State{
		configManager: configManager,
		controllers:   controllers,
		sensors:       sensors,
		mappings:      mappings,
		sampleCache:   make(map[string]float32),
	}
}

// ConfigManager returns the configuration handle.
func (s *State) ConfigManager() *config.Manager {
	return s.configManager
}

// Controllers returns the controller set.
func (s *State) Controllers() *controller.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controllers
}

// Sensors returns the configured sensor sources.
func (s *State) Sensors() []tempsource.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensors
}

// Mappings returns the sensor/color mapping index.
func (s *State) Mappings() *mapping.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mappings
}

// SampleCache returns a defensive copy of the current temperature sample
// cache. Callers may retain and mutate the returned map freely.
func (s *State) SampleCache() map[string]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.sampleCache)
}

// ReplaceSampleCache atomically swaps the sample cache for snapshot. The
// write lock is held for the duration of the swap so concurrent readers
// always observe either the previous or the new complete snapshot, never
// a partial one.
func (s *State) ReplaceSampleCache(snapshot map[string]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampleCache = snapshot
}

// ReplaceMappings atomically swaps the sensor/color mapping index for
// idx. Used by a HotReload to apply a rebuilt mapping index without
// disturbing the controller set or sensor list.
func (s *State) ReplaceMappings(idx *mapping.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = idx
}

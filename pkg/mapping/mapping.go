// SPDX-License-Identifier: BSD-3-Clause

package mapping

import "sync"

// FanRef is a normalized 0-based (controller_index, channel_index) tuple.
type FanRef struct {
	Controller int
	Channel    int
}

// Index is the bidirectional sensor<->fan and color->fan relation set. All
// mutating operations preserve the invariant that FanToSensor[f] == s iff
// f is a member of SensorToFans[s].
type Index struct {
	mu           sync.RWMutex
	fanToSensor  map[FanRef]string
	sensorToFans map[string]map[FanRef]struct{}
	colorToFans  map[string]map[FanRef]struct{}
}

// New builds an empty Index.
func New() *Index {
	return &Index{
		fanToSensor:  make(map[FanRef]string),
		sensorToFans: make(map[string]map[FanRef]struct{}),
		colorToFans:  make(map[string]map[FanRef]struct{}),
	}
}

// LoadSensorMappings populates the sensor<->fan relation from a map of
// sensor to targets. A fan listed under more than one sensor ends up
// attached to exactly one of them, but which one is not defined, because
// map iteration order is random.
func (idx *Index) LoadSensorMappings(entries map[string][]FanRef) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for sensor, targets := range entries {
		for _, fr := range targets {
			idx.attachLocked(fr, sensor)
		}
	}
}

// LoadColorMappings populates the color->fan relation from a list of
// (color, targets) pairs.
func (idx *Index) LoadColorMappings(entries map[string][]FanRef) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for color, targets := range entries {
		set, ok := idx.colorToFans[color]
		if !ok {
			set = make(map[FanRef]struct{})
			idx.colorToFans[color] = set
		}
		for _, fr := range targets {
			set[fr] = struct{}{}
		}
	}
}

// FansForSensor returns the set of fans attached to sensor, as a slice
// (empty if the sensor has no attached fans).
func (idx *Index) FansForSensor(sensor string) []FanRef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	set := idx.sensorToFans[sensor]
	out := make([]FanRef, 0, len(set))
	for fr := range set {
		out = append(out, fr)
	}
	return out
}

// ColorToFans returns every (color, fans) pair currently registered.
func (idx *Index) ColorToFans() map[string][]FanRef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string][]FanRef, len(idx.colorToFans))
	for color, set := range idx.colorToFans {
		fans := make([]FanRef, 0, len(set))
		for fr := range set {
			fans = append(fans, fr)
		}
		out[color] = fans
	}
	return out
}

// Attach associates fan with sensor. If fan was already attached to a
// different sensor it is first removed from that sensor's set.
func (idx *Index) Attach(fan FanRef, sensor string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.attachLocked(fan, sensor)
}

func (idx *Index) attachLocked(fan FanRef, sensor string) {
	if prev, ok := idx.fanToSensor[fan]; ok && prev != sensor {
		if set, ok := idx.sensorToFans[prev]; ok {
			delete(set, fan)
			if len(set) == 0 {
				delete(idx.sensorToFans, prev)
			}
		}
	}
	idx.fanToSensor[fan] = sensor
	set, ok := idx.sensorToFans[sensor]
	if !ok {
		set = make(map[FanRef]struct{})
		idx.sensorToFans[sensor] = set
	}
	set[fan] = struct{}{}
}

// Detach removes fan from whatever sensor it is currently attached to, if
// any.
func (idx *Index) Detach(fan FanRef) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	sensor, ok := idx.fanToSensor[fan]
	if !ok {
		return
	}
	delete(idx.fanToSensor, fan)
	if set, ok := idx.sensorToFans[sensor]; ok {
		delete(set, fan)
		if len(set) == 0 {
			delete(idx.sensorToFans, sensor)
		}
	}
}

// SensorFor returns the sensor fan is currently attached to, if any.
func (idx *Index) SensorFor(fan FanRef) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	s, ok := idx.fanToSensor[fan]
	return s, ok
}

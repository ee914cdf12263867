package content

import "sync"

// Biome is a stateless environmental classifier. Given height, moisture and
// temperature samples in [0,1] it reports suitability, and supplies the
// ground tile tag plus a weighted actor spawn table for terrain generation.
type Biome interface {
	TypeTag() string
	Suitable(height, moisture, temperature float64) bool
	GroundTile() string
	SpawnTable() []Spawn
	Clone() Biome
}

// BiomeRegistry keeps biomes in registration order. Lookup is a linear scan
// returning the first suitable biome; there is no scoring.
type BiomeRegistry struct {
	mu         sync.RWMutex
	prototypes []Biome
}

func NewBiomeRegistry() *BiomeRegistry {
	return &BiomeRegistry{}
}

func (r *BiomeRegistry) Register(b Biome) {
	r.mu.Lock()
	r.prototypes = append(r.prototypes, b)
	r.mu.Unlock()
}

// Find returns the first registered biome suitable for the given samples.
func (r *BiomeRegistry) Find(height, moisture, temperature float64) (Biome, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.prototypes {
		if b.Suitable(height, moisture, temperature) {
			return b, true
		}
	}
	return nil, false
}

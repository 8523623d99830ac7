// Package registry assigns stable, dense integer IDs to block-states so the
// chunk decoder and the tile renderer can address blocks by a cheap 16-bit
// value instead of carrying name/property strings around.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
)

// ID is a dense, process-stable identifier for a block-state. IDs are
// assigned on first sight and never reused.
type ID uint16

// Property is a single key=value pair of a block-state's property map.
type Property struct {
	Key, Value string
}

// BlockState is a block name plus its property map. Equality is structural:
// two BlockStates with the same name and the same key/value pairs (in any
// input order) are the same state and resolve to the same ID.
type BlockState struct {
	Name       string
	Properties []Property // kept sorted by Key; see NewBlockState
}

// NewBlockState builds a BlockState with its properties canonicalized
// (sorted by key) so Canonical and registry lookups are order-independent.
func NewBlockState(name string, props map[string]string) BlockState {
	if len(props) == 0 {
		return BlockState{Name: name}
	}
	list := make([]Property, 0, len(props))
	for k, v := range props {
		list = append(list, Property{Key: k, Value: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return BlockState{Name: name, Properties: list}
}

// WithProperty returns a copy of b with key set to value, keeping the
// property list sorted. Used by the tile renderer to look up the
// waterlogged=false twin of a block-state the catalog has no image for.
func (b BlockState) WithProperty(key, value string) BlockState {
	props := make(map[string]string, len(b.Properties)+1)
	for _, p := range b.Properties {
		props[p.Key] = p.Value
	}
	props[key] = value
	return NewBlockState(b.Name, props)
}

// Property looks up a single property value by key.
func (b BlockState) Property(key string) (string, bool) {
	for _, p := range b.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Canonical renders b as "name{k=v,k=v}" (properties sorted), the form
// hashed for interning and used in error messages and test names.
func (b BlockState) Canonical() string {
	if len(b.Properties) == 0 {
		return b.Name
	}
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteByte('{')
	for i, p := range b.Properties {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// AirName is the block-state name used as the "no-op" sentinel for absent
// sections and culled blocks.
const AirName = "minecraft:air"

// Registry is the process-wide block-state table. It is safe for
// concurrent use: the chunk decoder and the image catalog loader both
// intern states into it, and renderer workers only read from it
// afterwards.
type Registry struct {
	mu     sync.RWMutex
	states []BlockState      // dense, index == ID
	byHash *intintmap.Map    // xxhash(Canonical()) -> int64(ID)
	known  map[string]map[string]bool // block name -> known property keys

	noop ID
}

// New creates an empty registry and interns minecraft:air as ID 0 so
// NoopID is always valid.
func New() *Registry {
	r := &Registry{
		byHash: intintmap.New(1024, 0.6),
		known:  make(map[string]map[string]bool),
	}
	r.noop = r.GetOrCreate(NewBlockState(AirName, nil))
	return r
}

// NoopID is the registry's ID for minecraft:air, the sentinel used for
// absent sections and culled blocks.
func (r *Registry) NoopID() ID { return r.noop }

// Size returns the number of distinct block-states interned so far.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// GetOrCreate interns s, returning its existing ID if already known or
// allocating a new dense ID on first sight.
func (r *Registry) GetOrCreate(s BlockState) ID {
	h := int64(xxhash.Sum64String(s.Canonical()))

	r.mu.RLock()
	if v, ok := r.byHash.Get(h); ok {
		r.mu.RUnlock()
		return ID(v)
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock: another goroutine may have interned
	// the same state between the RUnlock above and here.
	if v, ok := r.byHash.Get(h); ok {
		return ID(v)
	}
	id := ID(len(r.states))
	r.states = append(r.states, s)
	r.byHash.Put(h, int64(id))
	return id
}

// Lookup returns the BlockState for id, round-tripping GetOrCreate.
func (r *Registry) Lookup(id ID) (BlockState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.states) {
		return BlockState{}, false
	}
	return r.states[id], true
}

// Find returns the ID already assigned to s, if any, without allocating a
// new one. Used by render-time lookups that must not grow the registry.
func (r *Registry) Find(s BlockState) (ID, bool) {
	h := int64(xxhash.Sum64String(s.Canonical()))
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byHash.Get(h)
	return ID(v), ok
}

// RegisterKnownProperty records that block_name may legitimately carry a
// property named key. The image catalog loader calls this for every
// variant descriptor key it parses; the chunk decoder then uses
// IsKnownProperty to drop NBT properties the catalog has never heard of
// (typically protocol-only properties that don't affect the sprite).
func (r *Registry) RegisterKnownProperty(blockName, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.known[blockName]
	if !ok {
		set = make(map[string]bool)
		r.known[blockName] = set
	}
	set[key] = true
}

// IsKnownProperty reports whether key has been registered for blockName.
// A block with no registered properties at all (never mentioned by the
// catalog) is treated as permissive: everything is "known", since the
// catalog simply has no opinion about it.
func (r *Registry) IsKnownProperty(blockName, key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.known[blockName]
	if !ok {
		return true
	}
	return set[key]
}

// String implements fmt.Stringer for debugging and log fields.
func (b BlockState) String() string {
	return fmt.Sprintf("BlockState(%s)", b.Canonical())
}

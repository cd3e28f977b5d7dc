package ecs

// EntityID packs a 32-bit slot index (low bits) and a 32-bit generation
// (high bits). Generation 0 is never handed out so the zero ID means "none".
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool hands out generational IDs and recycles freed slots.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 512),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return NewEntityID(idx, 1)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if id.IsZero() || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id. Stale or unknown IDs are ignored.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Live returns the number of entities not yet destroyed.
func (p *EntityPool) Live() int { return p.live }

// Reset forgets every entity. Generations are bumped so IDs issued before the
// reset stay dead.
func (p *EntityPool) Reset() {
	p.freeList = p.freeList[:0]
	for i := range p.generations {
		p.generations[i]++
		if p.generations[i] == 0 {
			p.generations[i] = 1
		}
		p.freeList = append(p.freeList, uint32(i))
	}
	// pop order: lowest index first
	for i, j := 0, len(p.freeList)-1; i < j; i, j = i+1, j-1 {
		p.freeList[i], p.freeList[j] = p.freeList[j], p.freeList[i]
	}
	p.live = 0
}

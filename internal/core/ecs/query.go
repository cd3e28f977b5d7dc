package ecs

// Each2 visits entities that have both A and B, in A's insertion order.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for i, id := range sa.ids {
		if j, ok := sb.index[id]; ok {
			fn(id, sa.data[i], sb.data[j])
		}
	}
}

// Each3 visits entities that have A, B and C, in A's insertion order.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i, id := range sa.ids {
		j, ok := sb.index[id]
		if !ok {
			continue
		}
		k, ok := sc.index[id]
		if !ok {
			continue
		}
		fn(id, sa.data[i], sb.data[j], sc.data[k])
	}
}

// Each2Until is Each2 with early exit when fn returns false.
func Each2Until[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B) bool) {
	for i, id := range sa.ids {
		if j, ok := sb.index[id]; ok {
			if !fn(id, sa.data[i], sb.data[j]) {
				return
			}
		}
	}
}

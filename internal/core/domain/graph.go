package domain

// Unit is one loaded fingerprint record tagged with the metadata hash of the
// on-disk unit directory it was loaded from. Two units may share a metadata
// hash (a crate's build script and its compiled artifact); deleting one
// always deletes the other, which is the correct granularity since all files
// carrying that hash are swept together.
type Unit struct {
	MetaHash string
	Record   *Fingerprint
}

// Graph is the reverse-dependency graph over loaded fingerprint records.
// Nodes are indexed by canonical hash; an edge B->A exists when A's record
// lists B's canonical hash among its dependencies, meaning "if B is purged, A
// must be purged too".
type Graph struct {
	units   []Unit
	revDeps [][]int
}

// NewGraph indexes the units by canonical hash and resolves every declared
// dependency hash against that index. A dependency hash matching nothing
// loaded produces no edge; the dependency may legitimately live outside the
// scanned set (or be from a previous toolchain), so it is never an error.
func NewGraph(units []Unit) *Graph {
	byHash := make(map[uint64]int, len(units))
	for i := range units {
		byHash[units[i].Record.Hash()] = i
	}

	revDeps := make([][]int, len(units))
	for i := range units {
		for _, dep := range units[i].Record.Deps {
			if j, ok := byHash[dep.Fingerprint]; ok {
				revDeps[j] = append(revDeps[j], i)
			}
		}
	}

	return &Graph{units: units, revDeps: revDeps}
}

// Mark seeds every unit for which the predicate reports stale, propagates the
// flag across reverse-dependency edges to a fixed point, and returns the set
// of metadata hashes owned by any flagged unit.
//
// The result depends only on the seed set and the edges, not on unit order:
// each unit is flagged at most once, so the worklist terminates, and flagging
// is monotone. A pure function of its inputs; no state survives the call.
func (g *Graph) Mark(stale func(Unit) bool) map[string]bool {
	flagged := make([]bool, len(g.units))
	worklist := make([]int, 0, len(g.units))
	for i := range g.units {
		if stale(g.units[i]) {
			worklist = append(worklist, i)
		}
	}

	for len(worklist) > 0 {
		i := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if flagged[i] {
			continue
		}
		flagged[i] = true
		worklist = append(worklist, g.revDeps[i]...)
	}

	marked := make(map[string]bool)
	for i, f := range flagged {
		if f {
			marked[g.units[i].MetaHash] = true
		}
	}
	return marked
}

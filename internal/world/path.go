package world

// CanTraverse reports whether a unit of the faction may step from one
// node onto an adjacent one. Boarding — crossing from a land node into a
// sea zone — requires a friendly fleet already holding station in that
// zone. Sea-to-sea, sea-to-land, and land-to-land edges are always open.
func CanTraverse(w *World, from, to *Node, f Faction) bool {
	if to.IsSea() && !from.IsSea() {
		return w.FleetAt(to.ID, f)
	}
	return true
}

// FindPath runs a breadth-first search from start to end honoring the
// faction's traversal rules, and returns the shortest hop sequence
// excluding start and including end. start == end yields an empty path
// and ok. A missing route yields ok == false, which is an unreachable
// result rather than an error.
func FindPath(w *World, start, end string, f Faction) (path []string, ok bool) {
	if w.Nodes[start] == nil || w.Nodes[end] == nil {
		return nil, false
	}
	if start == end {
		return nil, true
	}

	// parent[n] is the node we first reached n from. Visitation follows
	// adjacency slice order, so the result is deterministic per world.
	parent := map[string]string{start: start}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curNode := w.Nodes[cur]

		for _, adj := range curNode.Adjacent {
			if _, seen := parent[adj]; seen {
				continue
			}
			next := w.Nodes[adj]
			if next == nil || !CanTraverse(w, curNode, next, f) {
				continue
			}
			parent[adj] = cur
			if adj == end {
				return buildPath(parent, start, end), true
			}
			queue = append(queue, adj)
		}
	}
	return nil, false
}

func buildPath(parent map[string]string, start, end string) []string {
	var rev []string
	for cur := end; cur != start; cur = parent[cur] {
		rev = append(rev, cur)
	}
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

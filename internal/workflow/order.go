package workflow

import (
	"fmt"
	"slices"
)

// Order returns the nodes in execution order: every node after all nodes
// with an edge into it. Among nodes that are ready together, document order
// wins. A cycle is an error.
func (w *Workflow) Order() ([]Node, error) {
	index := make(map[string]int, len(w.Nodes))
	for i, n := range w.Nodes {
		index[n.ID] = i
	}

	indeg := make([]int, len(w.Nodes))
	next := make([][]int, len(w.Nodes))

	for _, e := range w.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s -> %s references an unknown node", e.From, e.To)
		}

		to, ok := index[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s -> %s references an unknown node", e.From, e.To)
		}

		indeg[to]++
		next[from] = append(next[from], to)
	}

	var ready []int

	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]Node, 0, len(w.Nodes))

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, w.Nodes[i])

		for _, j := range next[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != len(w.Nodes) {
		var stuck []string

		for i, d := range indeg {
			if d > 0 {
				stuck = append(stuck, w.Nodes[i].ID)
			}
		}

		return nil, fmt.Errorf("workflow has a cycle through %v", stuck)
	}

	return order, nil
}

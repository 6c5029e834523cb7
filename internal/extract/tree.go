package extract

// Node is a descriptor with its direct descendants attached.
type Node struct {
	Descriptor
	Nodes []*Node
}

// Tree rebuilds the field hierarchy from a flat descriptor list. Descriptors
// whose parent is missing become roots.
func Tree(descs []Descriptor) []*Node {
	byPath := make(map[string]*Node, len(descs))

	var roots []*Node

	for _, d := range descs {
		n := &Node{Descriptor: d}
		byPath[d.Path] = n

		parent, ok := byPath[parentPath(d)]
		if !ok || len(d.Segments) < 2 {
			roots = append(roots, n)
			continue
		}

		parent.Nodes = append(parent.Nodes, n)
	}

	return roots
}

func parentPath(d Descriptor) string {
	if len(d.Segments) > 1 {
		return JoinPath(d.Segments[:len(d.Segments)-1])
	}

	return ""
}

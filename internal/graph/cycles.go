package graph

type color int

const (
	white color = iota
	gray
	black
)

// detectCycles runs a depth-first search with three colors over the target
// edges. white nodes are unvisited, gray nodes are on the current recursion
// stack and black nodes are fully explored. Reaching a gray node means the
// stack from that node onwards is a cycle, which is reported in full.
func (g *Graph) detectCycles() error {
	colors := make(map[ID]color, len(g.nodes))
	var stack []ID

	var visit func(id ID) error
	visit = func(id ID) error {
		colors[id] = gray
		stack = append(stack, id)

		for _, to := range g.edges[id] {
			switch colors[to] {
			case gray:
				start := 0
				for i, s := range stack {
					if s == to {
						start = i
						break
					}
				}
				path := append(append([]ID{}, stack[start:]...), to)
				return cycleError(path)
			case white:
				if err := visit(to); err != nil {
					return err
				}
			case black:
			}
		}

		stack = stack[:len(stack)-1]
		colors[id] = black
		return nil
	}

	for _, id := range g.order {
		if id.Kind != NodeTarget || colors[id] != white {
			continue
		}
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

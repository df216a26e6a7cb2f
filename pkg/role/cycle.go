package role

// findSourceCycle looks for a cycle in the role-sourcing graph, where
// next[i] is the index of the role that role i sources from (or -1).
//
// It uses depth-first search with white/gray/black coloring. Reaching a gray
// node closes a cycle; the returned slice lists the role indices on it,
// starting and ending with the same index. nil means the graph is acyclic.
func findSourceCycle(next []int) []int {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(next))
	var path []int

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		path = append(path, node)
		if child := next[node]; child >= 0 {
			switch color[child] {
			case white:
				if cycle := dfs(child); cycle != nil {
					return cycle
				}
			case gray:
				for i, n := range path {
					if n == child {
						cycle := append([]int(nil), path[i:]...)
						return append(cycle, child)
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return nil
	}

	for n := range next {
		if color[n] == white {
			if cycle := dfs(n); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

package proc

// Descendants expands the full descendant set of pid depth-first: each
// child is appended before its own subtree, so every prefix of the result
// lists parents before their children and the reversed sequence reaches
// leaves before ancestors within every branch. pid itself is never
// included, and each pid appears at most once; the seen set guards
// against a backend handing back duplicated or recycled pids mid-scan. A
// branch that vanishes during the walk simply contributes no children;
// its siblings are still expanded.
func Descendants(t Table, pid int) []int {
	var out []int
	seen := map[int]bool{pid: true}

	var walk func(int)
	walk = func(parent int) {
		for _, child := range t.ChildPids(parent) {
			if child <= 0 || seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(pid)
	return out
}

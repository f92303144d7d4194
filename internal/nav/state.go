package nav

// ActivePath returns the labels of every ancestor group of the leaf
// whose href equals the current route, outermost first. Matching is
// exact, never by prefix. Returns nil when no leaf matches.
func ActivePath(forest []Node, current string) []string {
	for _, node := range forest {
		switch typ := node.(type) {
		case Leaf:
			if typ.Href == current {
				return []string{}
			}

		case Group:
			if path := ActivePath(typ.Children, current); path != nil {
				return append([]string{typ.Label}, path...)
			}
		}
	}

	return nil
}

// OpenSet computes which groups render expanded: the groups the user
// toggled open plus every ancestor of the active leaf, so a deep link
// always shows its active entry without manual expansion.
func OpenSet(forest []Node, current string, userOpen []string) map[string]bool {
	open := make(map[string]bool, len(userOpen))
	for _, label := range userOpen {
		open[label] = true
	}

	for _, label := range ActivePath(forest, current) {
		open[label] = true
	}

	return open
}

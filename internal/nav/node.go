package nav

import (
	"slices"

	"github.com/morelia/expodesk/internal/session"
)

// Node is one entry of the static menu tree. The two shapes are
// explicit: a Group only toggles its children, a Leaf only navigates.
// A node with both an href and children is unrepresentable.
type Node interface {
	NodeLabel() string
	visibleTo(role session.Role) bool
}

type Leaf struct {
	Label string
	Icon  string
	Href  string
	Roles []session.Role
}

// NodeLabel implements Node.
func (l Leaf) NodeLabel() string {
	return l.Label
}

func (l Leaf) visibleTo(role session.Role) bool {
	return slices.Contains(l.Roles, role)
}

type Group struct {
	Label    string
	Icon     string
	Children []Node
	Roles    []session.Role
}

// NodeLabel implements Node.
func (g Group) NodeLabel() string {
	return g.Label
}

func (g Group) visibleTo(role session.Role) bool {
	return slices.Contains(g.Roles, role)
}

var (
	_ Node = Leaf{}
	_ Node = Group{}
)

// Filter prunes a forest down to what a role may see. A leaf survives
// iff the role is tagged on it. A group survives iff it still has at
// least one surviving child: an untagged header is kept while reachable
// children exist, and a tagged header with nothing left underneath is
// dropped rather than rendered as an empty toggle. Sibling order is
// preserved.
func Filter(forest []Node, role session.Role) []Node {
	filtered := make([]Node, 0, len(forest))

	for _, node := range forest {
		switch typ := node.(type) {
		case Leaf:
			if typ.visibleTo(role) {
				filtered = append(filtered, typ)
			}

		case Group:
			children := Filter(typ.Children, role)
			if len(children) == 0 {
				continue
			}

			typ.Children = children
			filtered = append(filtered, typ)
		}
	}

	return filtered
}

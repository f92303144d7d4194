package nav

import "github.com/morelia/expodesk/internal/session"

// Item is what the sidebar template consumes: a pruned node with its
// transient UI state already computed.
type Item struct {
	Label    string
	Icon     string
	Href     string
	IsGroup  bool
	Open     bool
	Active   bool
	Children []Item
}

// Render prunes the forest for the role and annotates it with the
// open/active state for the current route.
func Render(forest []Node, role session.Role, current string, userOpen []string) []Item {
	filtered := Filter(forest, role)
	open := OpenSet(filtered, current, userOpen)

	return render(filtered, current, open)
}

func render(forest []Node, current string, open map[string]bool) []Item {
	items := make([]Item, 0, len(forest))

	for _, node := range forest {
		switch typ := node.(type) {
		case Leaf:
			items = append(items, Item{
				Label:  typ.Label,
				Icon:   typ.Icon,
				Href:   typ.Href,
				Active: typ.Href == current,
			})

		case Group:
			items = append(items, Item{
				Label:    typ.Label,
				Icon:     typ.Icon,
				IsGroup:  true,
				Open:     open[typ.Label],
				Children: render(typ.Children, current, open),
			})
		}
	}

	return items
}

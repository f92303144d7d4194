package nav

import (
	"testing"

	"github.com/morelia/expodesk/internal/session"
)

func testForest() []Node {
	return []Node{
		Leaf{Label: "Overview", Href: "/admin", Roles: []session.Role{session.RoleAdmin}},
		Group{
			Label: "Records",
			Roles: []session.Role{session.RoleAdmin, session.RoleStaff},
			Children: []Node{
				Leaf{Label: "Venues", Href: "/admin/records/venues", Roles: []session.Role{session.RoleAdmin, session.RoleStaff}},
				Leaf{Label: "Associations", Href: "/admin/records/associations", Roles: []session.Role{session.RoleAdmin}},
			},
		},
		Group{
			Label: "Staff",
			Roles: []session.Role{session.RoleAdmin},
			Children: []Node{
				Leaf{Label: "Approvals", Href: "/admin/staff/approvals", Roles: []session.Role{session.RoleAdmin}},
			},
		},
		Group{
			// Untagged header over a reachable child: must survive
			// through the child.
			Label: "Help",
			Roles: []session.Role{},
			Children: []Node{
				Leaf{Label: "Guides", Href: "/guides", Roles: []session.Role{session.RoleStaff}},
			},
		},
	}
}

func labels(forest []Node) []string {
	result := make([]string, 0, len(forest))
	for _, node := range forest {
		result = append(result, node.NodeLabel())
	}

	return result
}

func TestFilterAdmin(t *testing.T) {
	filtered := Filter(testForest(), session.RoleAdmin)

	expected := []string{"Overview", "Records", "Staff"}
	got := labels(filtered)

	if len(expected) != len(got) {
		t.Fatalf("labels: expected %v, got %v", expected, got)
	}

	for idx := range expected {
		if expected[idx] != got[idx] {
			t.Fatalf("labels: expected %v, got %v", expected, got)
		}
	}

	records := filtered[1].(Group)
	if e, g := 2, len(records.Children); e != g {
		t.Errorf("len(records.Children): expected '%v', got '%v'", e, g)
	}
}

func TestFilterStaff(t *testing.T) {
	filtered := Filter(testForest(), session.RoleStaff)

	// The admin-only "Staff" group has no visible children and must be
	// omitted entirely; "Help" survives through its reachable child.
	expected := []string{"Records", "Help"}
	got := labels(filtered)

	if len(expected) != len(got) {
		t.Fatalf("labels: expected %v, got %v", expected, got)
	}

	for idx := range expected {
		if expected[idx] != got[idx] {
			t.Fatalf("labels: expected %v, got %v", expected, got)
		}
	}

	records := filtered[0].(Group)
	if e, g := 1, len(records.Children); e != g {
		t.Fatalf("len(records.Children): expected '%v', got '%v'", e, g)
	}

	if e, g := "Venues", records.Children[0].NodeLabel(); e != g {
		t.Errorf("records.Children[0]: expected '%v', got '%v'", e, g)
	}
}

func TestFilterPreservesSiblingOrder(t *testing.T) {
	forest := []Node{
		Leaf{Label: "C", Href: "/c", Roles: []session.Role{session.RoleStaff}},
		Leaf{Label: "A", Href: "/a", Roles: []session.Role{session.RoleStaff}},
		Leaf{Label: "B", Href: "/b", Roles: []session.Role{session.RoleAdmin}},
		Leaf{Label: "D", Href: "/d", Roles: []session.Role{session.RoleStaff}},
	}

	got := labels(Filter(forest, session.RoleStaff))
	expected := []string{"C", "A", "D"}

	if len(expected) != len(got) {
		t.Fatalf("labels: expected %v, got %v", expected, got)
	}

	for idx := range expected {
		if expected[idx] != got[idx] {
			t.Fatalf("labels: expected %v, got %v", expected, got)
		}
	}
}

func TestActivePath(t *testing.T) {
	path := ActivePath(testForest(), "/admin/records/venues")
	if path == nil {
		t.Fatal("ActivePath: expected a match")
	}

	if e, g := 1, len(path); e != g {
		t.Fatalf("len(path): expected '%v', got '%v'", e, g)
	}

	if e, g := "Records", path[0]; e != g {
		t.Errorf("path[0]: expected '%v', got '%v'", e, g)
	}

	// Exact match only, no prefix matching.
	if path := ActivePath(testForest(), "/admin/records/venues/7"); path != nil {
		t.Errorf("ActivePath: expected no match, got %v", path)
	}
}

func TestRenderDeepLinkAutoExpands(t *testing.T) {
	// Deep link with "Records" collapsed: the renderer expands it and
	// marks the venues leaf active.
	items := Render(testForest(), session.RoleAdmin, "/admin/records/venues", nil)

	var records *Item
	for idx := range items {
		if items[idx].Label == "Records" {
			records = &items[idx]
		}
	}

	if records == nil {
		t.Fatal("expected a Records group")
	}

	if !records.IsGroup {
		t.Error("records.IsGroup: expected true")
	}

	if !records.Open {
		t.Error("records.Open: expected auto-expansion for the active route")
	}

	var venues *Item
	for idx := range records.Children {
		if records.Children[idx].Label == "Venues" {
			venues = &records.Children[idx]
		}
	}

	if venues == nil {
		t.Fatal("expected a Venues leaf")
	}

	if !venues.Active {
		t.Error("venues.Active: expected true")
	}
}

func TestRenderTogglesAreIndependent(t *testing.T) {
	items := Render(testForest(), session.RoleAdmin, "/admin", []string{"Records", "Staff"})

	for _, item := range items {
		if !item.IsGroup {
			continue
		}

		if !item.Open {
			t.Errorf("group '%s': expected open", item.Label)
		}
	}
}

func TestForestHidesAdminEntriesFromStaff(t *testing.T) {
	items := Render(Forest(), session.RoleStaff, "/staff", nil)

	for _, item := range items {
		if item.Label == "Staff" || item.Label == "Operations" || item.Label == "Overview" {
			t.Errorf("item '%s': must not be visible to staff", item.Label)
		}
	}
}

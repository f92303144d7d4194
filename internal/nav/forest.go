package nav

import "github.com/morelia/expodesk/internal/session"

var anyRole = []session.Role{session.RoleAdmin, session.RoleStaff}
var adminOnly = []session.Role{session.RoleAdmin}
var staffOnly = []session.Role{session.RoleStaff}

// Forest is the dashboard menu. Immutable configuration: it is built
// once per layout and only its derived UI state changes at runtime.
func Forest() []Node {
	return []Node{
		Leaf{Label: "Overview", Icon: "fa-gauge", Href: "/admin", Roles: adminOnly},
		Leaf{Label: "My Desk", Icon: "fa-gauge", Href: "/staff", Roles: staffOnly},
		Group{
			Label: "Records",
			Icon:  "fa-folder-open",
			Roles: anyRole,
			Children: []Node{
				Leaf{Label: "Venues", Icon: "fa-building", Href: "/admin/records/venues", Roles: anyRole},
				Leaf{Label: "Exhibitions", Icon: "fa-images", Href: "/admin/records/exhibitions", Roles: anyRole},
				Leaf{Label: "Conferences", Icon: "fa-microphone", Href: "/admin/records/conferences", Roles: anyRole},
				Leaf{Label: "Companies", Icon: "fa-briefcase", Href: "/admin/records/companies", Roles: anyRole},
				Leaf{Label: "Associations", Icon: "fa-people-group", Href: "/admin/records/associations", Roles: adminOnly},
				Leaf{Label: "Key Contacts", Icon: "fa-address-book", Href: "/admin/records/key-contacts", Roles: anyRole},
			},
		},
		Group{
			Label: "Staff",
			Icon:  "fa-user-gear",
			Roles: adminOnly,
			Children: []Node{
				Leaf{Label: "Members", Icon: "fa-users", Href: "/admin/staff", Roles: adminOnly},
				Leaf{Label: "Approvals", Icon: "fa-user-check", Href: "/admin/staff/approvals", Roles: adminOnly},
			},
		},
		Group{
			Label: "Operations",
			Icon:  "fa-wrench",
			Roles: adminOnly,
			Children: []Node{
				Leaf{Label: "Activity", Icon: "fa-clock-rotate-left", Href: "/admin/activity", Roles: adminOnly},
			},
		},
	}
}

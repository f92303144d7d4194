package ui

// NavbarItem represents an item in the top navigation bar
type NavbarItem struct {
	Label    string
	URL      string
	Icon     string
	Position string // "left" or "right"
}

type NavbarTemplateData struct {
	Email       string
	NavbarItems []NavbarItem
}

var NavbarItemLogout = NavbarItem{
	Label:    "Logout",
	URL:      "/auth/logout",
	Icon:     "fa-sign-out-alt",
	Position: "right",
}

package ui

import "github.com/morelia/expodesk/internal/nav"

type SidebarTemplateData struct {
	SidebarItems []nav.Item
}

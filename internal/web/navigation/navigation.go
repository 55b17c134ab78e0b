// Package navigation provides the admin menu and breadcrumb state for pages.
package navigation

import (
	"github.com/silsila-idreesia/portal/authz"
	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Entry is one admin menu item guarded by a permission token.
type Entry struct {
	Label      string `json:"label"`
	LabelUr    string `json:"label_ur"`
	Route      string `json:"route"`
	Permission string `json:"permission"`
}

// Menu is the full admin menu in display order.
var Menu = []Entry{
	{Label: "Zones", LabelUr: "زونز", Route: "/zones", Permission: auth.PermViewZones},
	{Label: "Mehfil Directory", LabelUr: "محفل ڈائریکٹری", Route: "/mehfils", Permission: auth.PermViewMehfils},
	{Label: "Karkuns", LabelUr: "کارکنان", Route: "/karkuns", Permission: auth.PermViewKarkuns},
	{Label: "New Ehads", LabelUr: "نئے عہد", Route: "/ehads", Permission: auth.PermViewEhads},
	{Label: "Tabarukat", LabelUr: "تبرکات", Route: "/tabarukats", Permission: auth.PermViewTabarukats},
	{Label: "Mehfil Reports", LabelUr: "محفل رپورٹس", Route: "/reports", Permission: auth.PermViewReports},
	{Label: "Taleemat", LabelUr: "تعلیمات", Route: "/taleemats", Permission: auth.PermViewTaleemat},
	{Label: "Users", LabelUr: "صارفین", Route: "/admin/users", Permission: auth.PermViewUsers},
	{Label: "Roles", LabelUr: "کردار", Route: "/admin/roles", Permission: auth.PermViewRoles},
}

// Filter returns the menu entries the user may see, preserving order.
// A nil user sees nothing.
func Filter(user *models.User) []Entry {
	visible := make([]Entry, 0, len(Menu))

	for _, entry := range Menu {
		if authz.HasPermission(user, entry.Permission) {
			visible = append(visible, entry)
		}
	}

	return visible
}

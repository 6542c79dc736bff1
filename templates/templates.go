package templates

//go:generate templ generate

import (
	"strconv"

	"github.com/presencedash/models"
)

// NavItem is one entry of the view menu.
type NavItem struct {
	Name        string
	Description string
	Active      bool
}

// IndexData fills the statistics page of one view.
type IndexData struct {
	PageID  string
	View    string
	Title   string
	Nav     []NavItem
	Users   []models.User
	Message string

	// ChartAssets are the echarts scripts chart fragments rely on.
	ChartAssets []string
}

func (d IndexData) chartURL() string {
	return "/statistics/" + d.View + "/chart?page=" + d.PageID
}

func (d IndexData) avatarURL() string {
	return "/statistics/" + d.View + "/avatar?page=" + d.PageID
}

func navURL(item NavItem) string {
	return "/statistics/" + item.Name + "/"
}

func userValue(u models.User) string {
	return strconv.Itoa(u.ID)
}

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/presencedash/templates"
	"github.com/presencedash/views"
)

const defaultView = "presence_weekday"

// HTTP handlers
func (d *Dashboard) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/statistics/"+defaultView+"/", http.StatusFound)
}

func (d *Dashboard) statisticsHandler(w http.ResponseWriter, r *http.Request) {
	cfg, ok := views.Lookup(chi.URLParam(r, "view"))
	if !ok {
		templ.Handler(templates.Error("Unknown view"), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
		return
	}

	p := &page{
		id:     uuid.NewString(),
		view:   views.NewController(cfg, d.api, d.renderer, d.logger, d.metrics),
		avatar: views.NewAvatarController(d.api, d.avatarBaseURL, d.logger),
	}

	// The directory is loaded once per page; a failure leaves the control
	// empty and shows a message instead of the chart.
	if err := p.view.LoadDirectory(r.Context()); err != nil {
		d.logger.Warn("rendering page without users", slog.String("view", cfg.Name), slog.Any("error", err))
	}
	d.pages.add(p)

	nav := make([]templates.NavItem, 0, len(views.All))
	for _, v := range views.All {
		nav = append(nav, templates.NavItem{Name: v.Name, Description: v.Description, Active: v.Name == cfg.Name})
	}

	component := templates.Index(templates.IndexData{
		PageID:      p.id,
		View:        cfg.Name,
		Title:       cfg.Description,
		Nav:         nav,
		Users:       p.view.Options(),
		Message:     p.view.Surface().Snapshot().Message,
		ChartAssets: d.renderer.Assets(),
	})
	templ.Handler(component).ServeHTTP(w, r)
}

// lookupPage finds the page a fragment request belongs to.
func (d *Dashboard) lookupPage(w http.ResponseWriter, r *http.Request) (*page, bool) {
	p, ok := d.pages.get(r.URL.Query().Get("page"))
	if !ok || p.view.Config().Name != chi.URLParam(r, "view") {
		http.Error(w, "Page expired, please reload", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func (d *Dashboard) chartHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := d.lookupPage(w, r)
	if !ok {
		return
	}

	snap, err := p.view.Select(r.Context(), r.URL.Query().Get("user_id"))
	if errors.Is(err, views.ErrStaleResponse) {
		// A newer selection owns the chart area; leave it alone.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// Other errors are already part of the snapshot as an inline message.
	templ.Handler(templates.Chart(snap)).ServeHTTP(w, r)
}

func (d *Dashboard) avatarHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := d.lookupPage(w, r)
	if !ok {
		return
	}

	avatar, err := p.avatar.Lookup(r.Context(), r.URL.Query().Get("user_id"))
	if errors.Is(err, views.ErrStaleResponse) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	templ.Handler(templates.Avatar(avatar)).ServeHTTP(w, r)
}

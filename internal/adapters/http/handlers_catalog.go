package web

import (
	"errors"
	"net/http"

	"hremodeling/internal/application/projections"
	"hremodeling/internal/domain/catalog"
)

// projectJSON is the wire shape of one portfolio project.
type projectJSON struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Location string `json:"location"`
	Year     string `json:"year"`
	Duration string `json:"duration"`
	Image    string `json:"image"`
}

func toProjectJSON(p catalog.Project) projectJSON {
	return projectJSON{
		ID:       p.ID,
		Slug:     p.Slug,
		Category: p.Category,
		Location: p.Location,
		Year:     p.Year,
		Duration: p.Duration,
		Image:    p.Image,
	}
}

// handleProjectList returns the portfolio, optionally filtered by
// ?category=. Unknown categories are a client error, not an empty list.
func handleProjectList(w http.ResponseWriter, r *http.Request) {
	list, err := projections.GetProjectList(projections.ProjectListFilter{
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	out := make([]projectJSON, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleProjectDetail returns one project plus up to three related ones.
func handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := projections.GetProjectDetail(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	related := make([]projectJSON, 0, len(detail.Related))
	for _, p := range detail.Related {
		related = append(related, toProjectJSON(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Project projectJSON   `json:"project"`
		Related []projectJSON `json:"related"`
	}{toProjectJSON(detail.Project), related})
}

// serviceJSON is the wire shape of one service, copy pre-rendered to HTML.
type serviceJSON struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
	HTML  string `json:"html"`
}

// handleServiceList returns the four services with markdown copy rendered.
func handleServiceList(w http.ResponseWriter, r *http.Request) {
	services := projections.GetServiceList()
	out := make([]serviceJSON, 0, len(services))
	for _, s := range services {
		out = append(out, serviceJSON{
			ID:    s.ID,
			Icon:  s.Icon,
			Image: s.Image,
			HTML:  string(renderMarkdown(s.Copy)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

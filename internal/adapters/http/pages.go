package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"

	"hremodeling/internal/adapters/i18n"
	"hremodeling/internal/adapters/seo"
	"hremodeling/internal/application/projections"
	"hremodeling/internal/domain/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates maps page name to its parsed layout+content pair. Parsed
// once at startup; a parse failure is fatal by way of template.Must.
var pageTemplates = func() map[string]*template.Template {
	names := []string{"home", "services", "projects", "project", "about", "contact"}
	m := make(map[string]*template.Template, len(names))
	for _, name := range names {
		m[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return m
}()

// pageData is the render context for every marketing page. Translation is a
// method so templates can call {{.T "nav" "home"}} without a per-request
// func map.
type pageData struct {
	Locale    string
	Path      string // current path without the locale prefix
	BaseURL   string
	CSRFField template.HTML
	JSONLD    []template.JS

	Services []catalog.Service
	Projects []catalog.Project
	Project  catalog.Project
	Related  []catalog.Project
	Category string
}

// T looks up a translated string for the page's locale.
func (d pageData) T(namespace, key string) string {
	return translations.T(d.Locale, namespace, key)
}

// Categories lists the portfolio filter values.
func (d pageData) Categories() []string {
	return catalog.Categories
}

// Markdown renders catalog copy for embedding.
func (d pageData) Markdown(md string) template.HTML {
	return renderMarkdown(md)
}

// contactFAQ backs the FAQPage markup on the contact page.
var contactFAQ = []seo.FAQItem{
	{
		Question: "Do you offer free estimates?",
		Answer:   "Yes. Send us a message through the contact form and we will schedule a free on-site estimate.",
	},
	{
		Question: "What areas do you serve?",
		Answer:   "We serve the Washington metropolitan area: D.C., Maryland, and Northern Virginia.",
	},
	{
		Question: "How long does a typical kitchen remodel take?",
		Answer:   "Most kitchen remodels take six to eight weeks depending on scope and material lead times.",
	},
}

// handleRootRedirect sends bare-origin visitors to the default locale.
func handleRootRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+i18n.DefaultLocale, http.StatusFound)
}

// requireLocale validates the locale path segment, writing 404 on failure.
func requireLocale(w http.ResponseWriter, r *http.Request) (string, bool) {
	locale := r.PathValue("locale")
	if !i18n.Supported(locale) {
		http.NotFound(w, r)
		return "", false
	}
	return locale, true
}

func renderPage(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	data.BaseURL = config.BaseURL
	data.CSRFField = csrf.TemplateField(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates[name].Execute(w, data); err != nil {
		internalError(w, err)
	}
}

// handlePage renders a static page for the path's locale.
func handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale, ok := requireLocale(w, r)
		if !ok {
			return
		}

		data := pageData{Locale: locale, Path: pathFor(name)}
		switch name {
		case "home", "services":
			data.Services = projections.GetServiceList()
			data.JSONLD = append(data.JSONLD, jsonLD(seo.LocalBusinessSchema(config.BaseURL)))
			if name == "services" {
				for _, s := range data.Services {
					label := translations.T(locale, "services", s.ID)
					data.JSONLD = append(data.JSONLD,
						jsonLD(seo.ServiceSchema(s.ID, label, locale, config.BaseURL)))
				}
			}
		case "contact":
			data.JSONLD = append(data.JSONLD, jsonLD(seo.BreadcrumbSchemaWithLabels(locale,
				[]seo.BreadcrumbItem{{Path: "/contact", Label: translations.T(locale, "nav", "contact")}},
				config.BaseURL)))
			data.JSONLD = append(data.JSONLD, jsonLD(seo.FAQSchema(contactFAQ)))
		case "about":
			data.JSONLD = append(data.JSONLD, jsonLD(seo.BreadcrumbSchemaWithLabels(locale,
				[]seo.BreadcrumbItem{{Path: "/about", Label: translations.T(locale, "nav", "about")}},
				config.BaseURL)))
		}
		renderPage(w, r, name, data)
	}
}

// handleProjectsPage renders the portfolio listing with optional
// ?category= filtering.
func handleProjectsPage(w http.ResponseWriter, r *http.Request) {
	locale, ok := requireLocale(w, r)
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")
	list, err := projections.GetProjectList(projections.ProjectListFilter{Category: category})
	if err != nil {
		// An unknown filter falls back to the full portfolio.
		list, _ = projections.GetProjectList(projections.ProjectListFilter{})
		category = ""
	}

	data := pageData{
		Locale:   locale,
		Path:     "/projects",
		Projects: list,
		Category: category,
	}
	data.JSONLD = append(data.JSONLD, jsonLD(seo.BreadcrumbSchemaWithLabels(locale,
		[]seo.BreadcrumbItem{{Path: "/projects", Label: translations.T(locale, "nav", "projects")}},
		config.BaseURL)))
	renderPage(w, r, "projects", data)
}

// handleProjectPage renders one project detail page.
func handleProjectPage(w http.ResponseWriter, r *http.Request) {
	locale, ok := requireLocale(w, r)
	if !ok {
		return
	}

	detail, err := projections.GetProjectDetail(r.PathValue("slug"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := pageData{
		Locale:  locale,
		Path:    "/projects/" + detail.Project.Slug,
		Project: detail.Project,
		Related: detail.Related,
	}
	data.JSONLD = append(data.JSONLD, jsonLD(seo.BreadcrumbSchema(locale,
		[]string{"projects", detail.Project.Slug}, config.BaseURL)))
	renderPage(w, r, "project", data)
}

// handleSitemap serves the generated sitemaps.org document.
func handleSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := seo.RenderSitemap(seo.SitemapEntries(config.BaseURL, timeNow()))
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

// handleRobots serves the crawl policy.
func handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(seo.RobotsTxt(config.BaseURL)))
}

func jsonLD(schema map[string]any) template.JS {
	return template.JS(seo.MarshalJSONLD(schema))
}

func pathFor(name string) string {
	if name == "home" {
		return ""
	}
	return "/" + name
}

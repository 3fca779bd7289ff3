package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Project categories. These double as service identifiers for the contact
// form's service field.
const (
	CategoryKitchen  = "kitchen"
	CategoryBathroom = "bathroom"
	CategoryFlooring = "flooring"
	CategoryDecking  = "decking"
)

// Categories lists all project categories in display order.
var Categories = []string{CategoryKitchen, CategoryBathroom, CategoryFlooring, CategoryDecking}

// Domain errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUnknownCategory = errors.New("unknown project category")
)

// Project is one portfolio entry. The catalog is static content compiled
// into the binary; there is no project database.
type Project struct {
	ID       int
	Slug     string
	Category string
	Location string // "City, ST"
	Year     string
	Duration string
	Image    string   // primary image path
	Images   []string // gallery image paths, primary first
}

// City returns the city portion of the location.
// INVARIANT: Location is "City, ST"; a location without a comma is returned whole
func (p Project) City() string {
	city, _, _ := strings.Cut(p.Location, ",")
	return strings.TrimSpace(city)
}

// ValidCategory reports whether c names a known project category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// img builds the conventional image path for a category and number.
func img(category string, n int) string {
	return fmt.Sprintf("/images/projects/%s/%d.webp", category, n)
}

// proj builds a catalog entry with a single-image gallery.
func proj(id int, slug, category, location, year, duration string, imgNum int) Project {
	primary := img(category, imgNum)
	return Project{
		ID:       id,
		Slug:     slug,
		Category: category,
		Location: location,
		Year:     year,
		Duration: duration,
		Image:    primary,
		Images:   []string{primary},
	}
}

// projects is the full portfolio. Ordering here is insertion order by
// category; callers get display order from the projections layer.
var projects = []Project{
	// Kitchen
	proj(1, "modern-kitchen-bethesda", CategoryKitchen, "Bethesda, MD", "2025", "4 weeks", 1),
	proj(2, "contemporary-kitchen-arlington", CategoryKitchen, "Arlington, VA", "2025", "4 weeks", 2),
	proj(3, "elegant-kitchen-mclean", CategoryKitchen, "McLean, VA", "2024", "5 weeks", 3),
	proj(4, "compact-kitchen-dc", CategoryKitchen, "Washington, D.C.", "2024", "3 weeks", 4),
	proj(5, "coastal-kitchen-alexandria", CategoryKitchen, "Alexandria, VA", "2024", "4 weeks", 5),
	proj(6, "classic-white-kitchen-vienna", CategoryKitchen, "Vienna, VA", "2023", "5 weeks", 6),
	proj(7, "modern-black-white-kitchen-fairfax", CategoryKitchen, "Fairfax, VA", "2023", "4 weeks", 7),
	proj(8, "luxury-winter-kitchen-potomac", CategoryKitchen, "Potomac, MD", "2025", "6 weeks", 8),
	// Bathroom
	proj(9, "modern-walnut-bathroom-arlington", CategoryBathroom, "Arlington, VA", "2025", "3 weeks", 1),
	proj(10, "classic-subway-tile-bathroom-vienna", CategoryBathroom, "Vienna, VA", "2024", "2 weeks", 2),
	proj(11, "farmhouse-bathroom-silver-spring", CategoryBathroom, "Silver Spring, MD", "2024", "3 weeks", 3),
	proj(12, "luxury-marble-bathroom-potomac", CategoryBathroom, "Potomac, MD", "2024", "5 weeks", 4),
	proj(13, "navy-marble-bathroom-bethesda", CategoryBathroom, "Bethesda, MD", "2023", "4 weeks", 5),
	proj(14, "teal-gold-bathroom-mclean", CategoryBathroom, "McLean, VA", "2025", "3 weeks", 6),
	proj(15, "compact-bathroom-rockville", CategoryBathroom, "Rockville, MD", "2024", "2 weeks", 7),
	// Flooring
	proj(16, "epoxy-garage-arlington", CategoryFlooring, "Arlington, VA", "2024", "1 week", 1),
	proj(17, "commercial-epoxy-fairfax", CategoryFlooring, "Fairfax, VA", "2024", "1 week", 2),
	proj(18, "gray-flake-garage-bethesda", CategoryFlooring, "Bethesda, MD", "2024", "1 week", 3),
	proj(19, "luxury-vinyl-entrance-mclean", CategoryFlooring, "McLean, VA", "2023", "2 weeks", 4),
	proj(20, "tan-garage-coating-potomac", CategoryFlooring, "Potomac, MD", "2023", "1 week", 5),
	proj(21, "herringbone-lvp-silver-spring", CategoryFlooring, "Silver Spring, MD", "2024", "2 weeks", 6),
	proj(22, "basement-flooring-alexandria", CategoryFlooring, "Alexandria, VA", "2023", "2 weeks", 7),
	// Decking
	proj(23, "modern-deck-lighting-alexandria", CategoryDecking, "Alexandria, VA", "2025", "3 weeks", 1),
	proj(24, "cedar-deck-bethesda", CategoryDecking, "Bethesda, MD", "2024", "2 weeks", 2),
	proj(25, "gray-composite-deck-arlington", CategoryDecking, "Arlington, VA", "2024", "3 weeks", 3),
	proj(26, "front-porch-deck-vienna", CategoryDecking, "Vienna, VA", "2024", "2 weeks", 4),
	proj(27, "composite-deck-potomac", CategoryDecking, "Potomac, MD", "2024", "3 weeks", 5),
	proj(28, "multi-level-deck-mclean", CategoryDecking, "McLean, VA", "2025", "4 weeks", 6),
	proj(29, "rooftop-deck-dc", CategoryDecking, "Washington, D.C.", "2023", "3 weeks", 7),
}

// Projects returns a copy of the full portfolio in catalog order.
// POST: Callers may reorder the returned slice freely
func Projects() []Project {
	out := make([]Project, len(projects))
	copy(out, projects)
	return out
}

// ProjectBySlug looks up a project by its unique slug.
// PRE: slug is non-empty
// POST: Returns the project or ErrProjectNotFound
func ProjectBySlug(slug string) (Project, error) {
	for _, p := range projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
}

// ProjectSlugs returns every project slug, for sitemap generation.
func ProjectSlugs() []string {
	slugs := make([]string, len(projects))
	for i, p := range projects {
		slugs[i] = p.Slug
	}
	return slugs
}

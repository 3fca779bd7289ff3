package projections

import (
	"fmt"
	"sort"

	"hremodeling/internal/domain/catalog"
)

// ProjectListFilter narrows the portfolio listing.
type ProjectListFilter struct {
	Category string // empty or "all" means no filter
}

// GetProjectList returns portfolio entries in display order: most recent
// year first, then city alphabetically within a year.
// PRE: filter.Category is empty, "all", or a known category
// POST: Returns a sorted copy; ErrUnknownCategory for bad filters
func GetProjectList(filter ProjectListFilter) ([]catalog.Project, error) {
	all := catalog.Projects()

	out := all
	if filter.Category != "" && filter.Category != "all" {
		if !catalog.ValidCategory(filter.Category) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownCategory, filter.Category)
		}
		out = out[:0]
		for _, p := range all {
			if p.Category == filter.Category {
				out = append(out, p)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].City() < out[j].City()
	})
	return out, nil
}

// ProjectDetail is the read model for one project page.
type ProjectDetail struct {
	Project catalog.Project
	Related []catalog.Project // same category, excluding the project itself
}

// GetProjectDetail returns one project with its related entries.
// PRE: slug is non-empty
// POST: Returns the detail or ErrProjectNotFound
func GetProjectDetail(slug string) (ProjectDetail, error) {
	p, err := catalog.ProjectBySlug(slug)
	if err != nil {
		return ProjectDetail{}, err
	}

	related, err := GetProjectList(ProjectListFilter{Category: p.Category})
	if err != nil {
		return ProjectDetail{}, err
	}
	out := related[:0]
	for _, r := range related {
		if r.Slug != p.Slug {
			out = append(out, r)
		}
	}
	const maxRelated = 3
	if len(out) > maxRelated {
		out = out[:maxRelated]
	}
	return ProjectDetail{Project: p, Related: out}, nil
}

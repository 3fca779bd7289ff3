package catalog

// Service is one remodeling service offered on the site. Names and taglines
// are localized through the i18n bundles; the markdown copy here is the
// canonical English page content rendered server-side.
type Service struct {
	ID    string // matches a project category
	Icon  string
	Image string
	Copy  string // markdown
}

var services = []Service{
	{
		ID:    CategoryKitchen,
		Icon:  "🍳",
		Image: "/images/services/kitchen.webp",
		Copy: `Full kitchen remodels from layout to finish: custom cabinetry,
countertops, backsplashes, lighting, and appliance installation.

- Design consultation and 3D layout
- Cabinet and countertop fabrication
- Plumbing and electrical rough-in
`,
	},
	{
		ID:    CategoryBathroom,
		Icon:  "🛁",
		Image: "/images/services/bathroom.webp",
		Copy: `Bathroom renovations of every size, from powder rooms to primary
suites: tile work, walk-in showers, vanities, and fixtures.

- Waterproofing and tile installation
- Custom shower glass and stone
- Heated floors and ventilation
`,
	},
	{
		ID:    CategoryFlooring,
		Icon:  "🪵",
		Image: "/images/services/flooring.webp",
		Copy: `Residential and commercial flooring: epoxy garage coatings,
luxury vinyl plank, and hardwood refinishing.

- Epoxy and flake garage systems
- LVP and herringbone installation
- Surface preparation and leveling
`,
	},
	{
		ID:    CategoryDecking,
		Icon:  "🏡",
		Image: "/images/services/decking.webp",
		Copy: `Outdoor living spaces built to last: composite and cedar decks,
multi-level layouts, railings, and integrated lighting.

- Composite and natural wood decking
- Permitting and structural framing
- Built-in seating and lighting
`,
	},
}

// Services returns a copy of the service catalog in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ServiceByID looks up a service by its identifier.
// PRE: id is non-empty
// POST: Returns the service or ErrUnknownCategory
func ServiceByID(id string) (Service, error) {
	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, ErrUnknownCategory
}

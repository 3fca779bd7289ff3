package projections

import (
	"hremodeling/internal/domain/catalog"
)

// GetServiceList returns the service catalog in display order.
func GetServiceList() []catalog.Service {
	return catalog.Services()
}

// GetService returns one service by its identifier.
// PRE: id is non-empty
// POST: Returns the service or ErrUnknownCategory
func GetService(id string) (catalog.Service, error) {
	return catalog.ServiceByID(id)
}

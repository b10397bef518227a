package service

import "time"

// warrantyService implements both roles of the workflow: registrants filling
// and submitting a cart, and shops looking up and redeeming units.
//
// Every operation re-reads the whole store and filters in memory. The data set
// is one row per unit sold through a handful of shops, so there is no index.
type warrantyService struct {
	store      RecordStore
	dispatcher Dispatcher
	catalog    Catalog
	now        func() time.Time
}

func NewWarrantyService(store RecordStore, dispatcher Dispatcher, catalog Catalog) *warrantyService {
	return &warrantyService{
		store:      store,
		dispatcher: dispatcher,
		catalog:    catalog,
		now:        time.Now,
	}
}

func (s *warrantyService) Catalog() Catalog {
	return s.catalog
}

func (s *warrantyService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

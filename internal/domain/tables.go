package domain

var Tables = []interface{}{
	// Catalog
	&Product{},
	&Category{},
	&Tag{},
}

package domain

// Geo is a latitude/longitude pair kept as the submitted decimal strings
type Geo struct {
	Lat  string `gorm:"size:32" json:"lat"`  // Latitude
	Long string `gorm:"size:32" json:"long"` // Longitude
}

// Region Model, a coastal zone grouping islands
type Region struct {
	ID         uint   `gorm:"primaryKey" json:"-"`                       // Primary key
	Name       string `gorm:"uniqueIndex;size:128;not null" json:"name"` // Region name, used as category
	Identifier string `json:"identifier"`                                // Display identifier
	Geo        Geo    `gorm:"embedded;embeddedPrefix:geo_" json:"geo"`   // Region centre
}

package domain

// Island Model, a point of interest on the dashboard
type Island struct {
	ID          uint    `gorm:"primaryKey" json:"-"`                      // Primary key
	UUID        string  `gorm:"uniqueIndex;size:36;not null" json:"uuid"` // External identifier
	Name        string  `gorm:"not null" json:"name"`                     // Island name
	Identifier  string  `json:"identifier"`                               // Display identifier
	Description string  `gorm:"type:text" json:"description"`             // Free text description
	Geo         Geo     `gorm:"embedded;embeddedPrefix:geo_" json:"geo"`  // Island position
	RegionID    uint    `gorm:"not null;index" json:"-"`                  // Foreign key to Region
	Region      Region  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"costalZone"`
	Images      []Image `gorm:"constraint:OnDelete:CASCADE;" json:"images"` // Attached images, insertion ordered
}

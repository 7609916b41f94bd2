package db

import (
	"islands/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
)

// Regions are the coastal zones islands are grouped by
var Regions = []domain.Region{
	{Name: "Atlantic", Identifier: "Wild Atlantic Way", Geo: domain.Geo{Lat: "53.270962", Long: "-9.908751"}},
	{Name: "Celtic Sea", Identifier: "South Coast", Geo: domain.Geo{Lat: "51.535004", Long: "-8.564353"}},
	{Name: "Irish Sea", Identifier: "East Coast", Geo: domain.Geo{Lat: "53.349805", Long: "-6.060310"}},
	{Name: "North Coast", Identifier: "Causeway Coast", Geo: domain.Geo{Lat: "55.240770", Long: "-6.511581"}},
	{Name: "Lakes", Identifier: "Inland Waters", Geo: domain.Geo{Lat: "53.412910", Long: "-8.243890"}},
}

// SeedRegions inserts the fixed region list, leaving existing rows alone
func SeedRegions(db *gorm.DB) error {
	regions := make([]domain.Region, len(Regions))
	copy(regions, Regions)
	// Region names are unique, so re-running the seed is a no-op
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&regions)
	if res.Error != nil {
		return res.Error
	}
	logrus.WithField("inserted", res.RowsAffected).Info("Regions seeded.")
	return nil
}

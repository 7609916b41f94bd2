package service

import (
	"context"                  // Request scoped DB calls
	"errors"                   // Error comparison
	"fmt"                      // Error wrapping
	"islands/internal/domain"  // Importing domain models
	"islands/internal/storage" // Image file store
	"islands/internal/utils"   // UUID generation

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Association clauses
)

// IslandInput carries the editable fields of an island form
type IslandInput struct {
	Region      string // Region name
	Name        string
	Description string
	Lat         string
	Long        string
}

// Upload is an attached file. A nil or empty upload is ignored.
type Upload struct {
	Name string
	Data []byte
}

// IslandView is an island as listed on the dashboard, tagged with its region
// name for the client side search control.
type IslandView struct {
	domain.Island
	Category string `json:"category"`
}

// Islands manages islands, their images and the on-disk image mirror
type Islands struct {
	db     *gorm.DB
	images *storage.Images
}

// NewIslands returns an island service writing image files to images
func NewIslands(db *gorm.DB, images *storage.Images) *Islands {
	return &Islands{db: db, images: images}
}

// Regions lists region names for the island forms
func (s *Islands) Regions(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := s.db.WithContext(ctx).Select("id", "name").Order("name").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return regions, nil
}

// List returns every island with its region and image uuids resolved
func (s *Islands) List(ctx context.Context) ([]IslandView, error) {
	var islands []domain.Island
	err := s.db.WithContext(ctx).
		Preload("Region").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "uuid", "ext", "island_id").Order("id")
		}).
		Order("id").
		Find(&islands).Error
	if err != nil {
		return nil, fmt.Errorf("list islands: %w", err)
	}
	views := make([]IslandView, len(islands))
	for i, island := range islands {
		views[i] = IslandView{Island: island, Category: island.Region.Name}
	}
	return views, nil
}

// Get loads one island by uuid with its region and image uuids
func (s *Islands) Get(ctx context.Context, uuid string) (*domain.Island, error) {
	var island domain.Island
	err := s.db.WithContext(ctx).
		Preload("Region").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "uuid", "name", "ext", "island_id").Order("id")
		}).
		Where("uuid = ?", uuid).
		First(&island).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIslandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find island %s: %w", uuid, err)
	}
	return &island, nil
}

// Create stores a new island in the named region with an optional first image
func (s *Islands) Create(ctx context.Context, in IslandInput, up *Upload) (*domain.Island, error) {
	region, err := s.region(ctx, in.Region)
	if err != nil {
		return nil, err
	}

	island := &domain.Island{
		UUID:     utils.NewUUID(),
		RegionID: region.ID,
	}
	apply(island, in)

	img := newImage(up)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(island).Error; err != nil {
			return fmt.Errorf("create island: %w", err)
		}
		return addImage(tx, island, img)
	})
	if err != nil {
		return nil, err
	}
	if err := s.mirror(island, img); err != nil {
		return nil, err
	}
	island.Region = *region
	return island, nil
}

// Update overwrites the island's fields and region, appending at most one image
func (s *Islands) Update(ctx context.Context, uuid string, in IslandInput, up *Upload) (*domain.Island, error) {
	region, err := s.region(ctx, in.Region)
	if err != nil {
		return nil, err
	}

	var island domain.Island
	err = s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&island).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIslandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find island %s: %w", uuid, err)
	}

	apply(&island, in)
	island.RegionID = region.ID

	img := newImage(up)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&island).Error; err != nil {
			return fmt.Errorf("save island %s: %w", uuid, err)
		}
		return addImage(tx, &island, img)
	})
	if err != nil {
		return nil, err
	}
	if err := s.mirror(&island, img); err != nil {
		return nil, err
	}
	island.Region = *region
	return &island, nil
}

// Delete removes the island, its image rows and its image directory.
func (s *Islands) Delete(ctx context.Context, uuid string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmIsland
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var island domain.Island
		if err := tx.Where("uuid = ?", uuid).Limit(1).Find(&island).Error; err != nil {
			return fmt.Errorf("find island %s: %w", uuid, err)
		}
		if island.ID == 0 {
			return domain.ErrDeleteFailed
		}
		if err := tx.Where("island_id = ?", island.ID).Delete(&domain.Image{}).Error; err != nil {
			return fmt.Errorf("delete images of island %s: %w", uuid, err)
		}
		res := tx.Delete(&island)
		if res.Error != nil {
			return fmt.Errorf("delete island %s: %w", uuid, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrDeleteFailed
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.images.RemoveIsland(uuid); err != nil {
		return fmt.Errorf("remove images of island %s: %w", uuid, err)
	}
	return nil
}

// RestoreImages rewrites image files missing from disk using the stored blobs
// and returns how many files were written.
func (s *Islands) RestoreImages(ctx context.Context) (int, error) {
	var islands []domain.Island
	if err := s.db.WithContext(ctx).Select("id", "uuid").Find(&islands).Error; err != nil {
		return 0, fmt.Errorf("list islands: %w", err)
	}
	restored := 0
	for _, island := range islands {
		var images []domain.Image
		if err := s.db.WithContext(ctx).Where("island_id = ?", island.ID).Order("id").Find(&images).Error; err != nil {
			return restored, fmt.Errorf("list images of island %s: %w", island.UUID, err)
		}
		for i := range images {
			ok, err := s.images.Exists(island.UUID, &images[i])
			if err != nil {
				return restored, err
			}
			if ok {
				continue
			}
			if _, err := s.images.Save(island.UUID, &images[i]); err != nil {
				return restored, err
			}
			restored++
			logrus.WithFields(logrus.Fields{"island": island.UUID, "image": images[i].UUID}).Info("Image restored")
		}
	}
	return restored, nil
}

func (s *Islands) region(ctx context.Context, name string) (*domain.Region, error) {
	var region domain.Region
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&region).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRegionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find region %q: %w", name, err)
	}
	return &region, nil
}

// mirror copies a freshly stored image to disk and records it on the island
func (s *Islands) mirror(island *domain.Island, img *domain.Image) error {
	if img == nil {
		return nil
	}
	if _, err := s.images.Save(island.UUID, img); err != nil {
		return fmt.Errorf("store image file: %w", err)
	}
	island.Images = append(island.Images, *img)
	return nil
}

func apply(island *domain.Island, in IslandInput) {
	island.Name = in.Name
	island.Identifier = "**" + in.Name + "**"
	island.Description = in.Description
	island.Geo = domain.Geo{Lat: in.Lat, Long: in.Long}
}

func newImage(up *Upload) *domain.Image {
	if up == nil || len(up.Data) == 0 {
		return nil
	}
	img := &domain.Image{UUID: utils.NewUUID(), Name: up.Name, Data: up.Data}
	storage.Detect(img)
	return img
}

func addImage(tx *gorm.DB, island *domain.Island, img *domain.Image) error {
	if img == nil {
		return nil
	}
	img.IslandID = island.ID
	if err := tx.Create(img).Error; err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	return nil
}

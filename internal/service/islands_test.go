package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"islands/internal/db/dbtest"
	"islands/internal/domain"
	"islands/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newIslands(t *testing.T) (*Islands, *gorm.DB, *storage.Images) {
	t.Helper()
	gdb := dbtest.Open(t)
	images := storage.NewImages(t.TempDir())
	return NewIslands(gdb, images), gdb, images
}

func inisMor() IslandInput {
	return IslandInput{Region: "Atlantic", Name: "Inis Mor", Description: "Largest of the Aran Islands", Lat: "53.120000", Long: "-9.700000"}
}

func TestCreate_ThenListShowsCategory(t *testing.T) {
	svc, _, _ := newIslands(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, inisMor(), nil)
	require.NoError(t, err)
	assert.Equal(t, "**Inis Mor**", created.Identifier)
	assert.Len(t, created.UUID, 36)
	assert.Empty(t, created.Images)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Atlantic", list[0].Category)
	assert.Equal(t, "Atlantic", list[0].Region.Name)
	assert.Equal(t, created.UUID, list[0].UUID)

	raw, err := json.Marshal(list)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Atlantic", decoded[0]["category"])
	assert.Equal(t, "Inis Mor", decoded[0]["name"])
	assert.Contains(t, decoded[0], "costalZone")
}

func TestCreate_UnknownRegion(t *testing.T) {
	svc, gdb, _ := newIslands(t)
	in := inisMor()
	in.Region = "Pacific"

	_, err := svc.Create(context.Background(), in, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, gdb.Model(&domain.Island{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreate_WithImage(t *testing.T) {
	svc, gdb, images := newIslands(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, inisMor(), &Upload{Name: "dun-aonghasa.png", Data: pngBytes})
	require.NoError(t, err)
	require.Len(t, created.Images, 1)
	img := created.Images[0]

	data, err := os.ReadFile(filepath.Join(images.Root, created.UUID, img.UUID+".png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	var stored domain.Image
	require.NoError(t, gdb.Where("uuid = ?", img.UUID).First(&stored).Error)
	assert.Equal(t, pngBytes, stored.Data)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, created.ID, stored.IslandID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list[0].Images, 1)
	assert.Equal(t, img.UUID, list[0].Images[0].UUID)
	assert.Nil(t, list[0].Images[0].Data, "listing only resolves image uuids")
}

func TestCreate_EmptyUploadIgnored(t *testing.T) {
	svc, gdb, _ := newIslands(t)

	created, err := svc.Create(context.Background(), inisMor(), &Upload{Name: "empty.png"})
	require.NoError(t, err)
	assert.Empty(t, created.Images)

	var n int64
	require.NoError(t, gdb.Model(&domain.Image{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGet(t *testing.T) {
	svc, _, _ := newIslands(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, inisMor(), nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Inis Mor", got.Name)
	assert.Equal(t, "Atlantic", got.Region.Name)

	_, err = svc.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ErrIslandNotFound, err)
}

func TestUpdate_OverwritesAndAppendsImage(t *testing.T) {
	svc, _, images := newIslands(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, inisMor(), &Upload{Name: "first.png", Data: pngBytes})
	require.NoError(t, err)

	in := IslandInput{Region: "Irish Sea", Name: "Lambay", Description: "Private island", Lat: "53.49", Long: "-6.02"}
	updated, err := svc.Update(ctx, created.UUID, in, &Upload{Name: "second.png", Data: pngBytes})
	require.NoError(t, err)
	assert.Equal(t, created.UUID, updated.UUID)

	got, err := svc.Get(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Lambay", got.Name)
	assert.Equal(t, "**Lambay**", got.Identifier)
	assert.Equal(t, "Private island", got.Description)
	assert.Equal(t, domain.Geo{Lat: "53.49", Long: "-6.02"}, got.Geo)
	assert.Equal(t, "Irish Sea", got.Region.Name)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "first.png", got.Images[0].Name)
	assert.Equal(t, "second.png", got.Images[1].Name)

	entries, err := os.ReadDir(filepath.Join(images.Root, created.UUID))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newIslands(t)
	_, err := svc.Update(context.Background(), "missing", inisMor(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, gdb, images := newIslands(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, inisMor(), &Upload{Name: "a.png", Data: pngBytes})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.UUID, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

	require.NoError(t, svc.Delete(ctx, created.UUID, true))

	_, err = os.Stat(filepath.Join(images.Root, created.UUID))
	assert.True(t, os.IsNotExist(err), "island directory must be removed")
	var n int64
	require.NoError(t, gdb.Model(&domain.Image{}).Count(&n).Error)
	assert.Zero(t, n, "image rows are deleted with the island")

	// second delete of the same uuid
	err = svc.Delete(ctx, created.UUID, true)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRestoreImages(t *testing.T) {
	svc, _, images := newIslands(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, inisMor(), &Upload{Name: "a.png", Data: pngBytes})
	require.NoError(t, err)

	n, err := svc.RestoreImages(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing missing yet")

	require.NoError(t, images.RemoveIsland(created.UUID))
	n, err = svc.RestoreImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = os.Stat(filepath.Join(images.Root, created.UUID, created.Images[0].UUID+".png"))
	assert.NoError(t, err)
}

func TestRegions(t *testing.T) {
	svc, _, _ := newIslands(t)
	regions, err := svc.Regions(context.Background())
	require.NoError(t, err)
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
	}
	assert.Contains(t, names, "Atlantic")
	assert.IsIncreasing(t, names)
}

package api

import (
	"context"                     // Context for Redis operations
	"encoding/json"               // Island list serialisation
	"fmt"                         // Error wrapping
	"io"                          // Upload reading
	"islands/internal/domain"     // Importing domain models
	"islands/internal/middleware" // Authenticated user
	"islands/internal/service"    // Island operations
	"islands/internal/utils"      // Cache utilities
	"mime/multipart"              // Uploaded files
	"net/http"                    // HTTP status codes
	"time"                        // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// IslandsCacheKey holds the cached dashboard listing
const IslandsCacheKey = "dashboard:islands"

// IslandRequest is the create island form
type IslandRequest struct {
	Region      string                `form:"region" binding:"required"`                            // Region name
	Name        string                `form:"name" binding:"required"`                              // Island name
	Description string                `form:"description" binding:"required"`                       // Description
	Lat         string                `form:"lat" binding:"required,numeric,decimals=6,latitude"`   // Latitude
	Long        string                `form:"long" binding:"required,numeric,decimals=6,longitude"` // Longitude
	File        *multipart.FileHeader `form:"file" json:"-"`                                        // Optional image
}

func (r IslandRequest) input() service.IslandInput {
	return service.IslandInput{Region: r.Region, Name: r.Name, Description: r.Description, Lat: r.Lat, Long: r.Long}
}

// echo returns the form values to show again, without the file
func (r IslandRequest) echo() IslandRequest {
	r.File = nil
	return r
}

// EditIslandRequest is the edit island form
type EditIslandRequest struct {
	UUID          string `form:"uuid" binding:"required"` // Island UUID
	IslandRequest        // Editable fields
}

func editPayload(island *domain.Island) EditIslandRequest {
	return EditIslandRequest{
		UUID: island.UUID,
		IslandRequest: IslandRequest{
			Region:      island.Region.Name,
			Name:        island.Name,
			Description: island.Description,
			Lat:         island.Geo.Lat,
			Long:        island.Geo.Long,
		},
	}
}

// readUpload loads an optional file field into memory
func readUpload(fh *multipart.FileHeader) (*service.Upload, error) {
	if fh == nil || fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &service.Upload{Name: fh.Filename, Data: data}, nil
}

// invalidateIslands drops the cached dashboard listing after a mutation
func invalidateIslands(ctx context.Context, rdb *redis.Client) {
	if err := utils.DeleteCache(ctx, rdb, IslandsCacheKey); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate islands cache")
	}
}

// ShowDashboardHandler lists all islands for the search control and map
func ShowDashboardHandler(islands *service.Islands, rdb *redis.Client, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user := middleware.User(c)
		data := gin.H{"title": "Islands of Ireland", "user": user, "jsonIslands": "[]", "apiKey": apiKey}
		var list []service.IslandView
		found, err := utils.GetCache(ctx, rdb, IslandsCacheKey, &list) // Try to get from cache
		if err != nil {
			logrus.WithField("error", err.Error()).Warn("Islands cache read failed")
		}
		if err != nil || !found {
			// An undecodable entry is replaced by a fresh listing
			list, err = islands.List(ctx)
			if err != nil {
				renderFailure(c, "dashboard", data, err)
				return
			}
			_ = utils.SetCache(ctx, rdb, IslandsCacheKey, list, 60*time.Second) // Cache the listing for 60 seconds
		}
		if list == nil {
			list = []service.IslandView{} // Serialise as [] rather than null
		}
		b, err := json.Marshal(list)
		if err != nil {
			renderFailure(c, "dashboard", data, err)
			return
		}
		data["jsonIslands"] = string(b)
		c.HTML(http.StatusOK, "dashboard", data)
	}
}

// ShowCreateHandler renders the add island form
func ShowCreateHandler(islands *service.Islands) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{"title": "Add Island", "user": middleware.User(c)}
		regions, err := islands.Regions(c.Request.Context())
		if err != nil {
			renderFailure(c, "create", data, err)
			return
		}
		data["categories"] = regions
		c.HTML(http.StatusOK, "create", data)
	}
}

// CreateIslandHandler stores a new island with its optional image
func CreateIslandHandler(islands *service.Islands, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		data := gin.H{"title": "Add Island", "user": middleware.User(c)}
		regions, err := islands.Regions(ctx)
		if err != nil {
			renderFailure(c, "create", data, err)
			return
		}
		data["categories"] = regions

		var req IslandRequest // Bind multipart form to struct
		if err := c.ShouldBind(&req); err != nil {
			data["payload"] = req.echo()
			renderInvalid(c, "create", data, err)
			return
		}
		upload, err := readUpload(req.File)
		if err != nil {
			data["payload"] = req.echo()
			renderFailure(c, "create", data, err)
			return
		}
		island, err := islands.Create(ctx, req.input(), upload)
		if err != nil {
			data["payload"] = req.echo()
			renderFailure(c, "create", data, err)
			return
		}
		invalidateIslands(ctx, rdb)
		logrus.WithFields(logrus.Fields{
			"island": island.UUID,        // Island UUID
			"region": island.Region.Name, // Region name
			"images": len(island.Images), // Images attached
		}).Info("Island created")
		data["success"] = "Your island '" + island.Name + "' has been added successfully"
		c.HTML(http.StatusOK, "create", data)
	}
}

// ShowEditHandler renders the edit form of one island
func ShowEditHandler(islands *service.Islands) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		data := gin.H{"title": "Edit Island", "user": middleware.User(c)}
		island, err := islands.Get(ctx, c.Param("id"))
		if err != nil {
			renderFailure(c, "edit", data, err)
			return
		}
		regions, err := islands.Regions(ctx)
		if err != nil {
			renderFailure(c, "edit", data, err)
			return
		}
		data["categories"] = regions
		data["island"] = island
		data["payload"] = editPayload(island)
		c.HTML(http.StatusOK, "edit", data)
	}
}

// UpdateIslandHandler overwrites an island and appends an optional image
func UpdateIslandHandler(islands *service.Islands, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		data := gin.H{"title": "Edit Island", "user": middleware.User(c)}
		regions, err := islands.Regions(ctx)
		if err != nil {
			renderFailure(c, "edit", data, err)
			return
		}
		data["categories"] = regions

		var req EditIslandRequest // Bind multipart form to struct
		bindErr := c.ShouldBind(&req)
		fh := req.File
		req.IslandRequest = req.echo()
		if bindErr != nil {
			data["payload"] = req
			renderInvalid(c, "edit", data, bindErr)
			return
		}
		upload, err := readUpload(fh)
		if err != nil {
			data["payload"] = req
			renderFailure(c, "edit", data, err)
			return
		}
		island, err := islands.Update(ctx, req.UUID, req.input(), upload)
		if err != nil {
			data["payload"] = req
			renderFailure(c, "edit", data, err)
			return
		}
		invalidateIslands(ctx, rdb)
		logrus.WithFields(logrus.Fields{
			"island":    island.UUID,   // Island UUID
			"new_image": upload != nil, // Whether an image was appended
		}).Info("Island updated")
		c.Redirect(http.StatusFound, "/edit/"+island.UUID)
	}
}

// DeleteIslandHandler removes an island and its image files once confirmed
func DeleteIslandHandler(islands *service.Islands, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		uuid := c.Param("id")
		var req DeleteRequest
		_ = c.ShouldBind(&req) // An unticked checkbox is simply absent
		if err := islands.Delete(ctx, uuid, req.Confirmed()); err != nil {
			data := gin.H{"title": "Edit Island", "user": middleware.User(c)}
			// Show the edit form again when the island still exists
			if island, getErr := islands.Get(ctx, uuid); getErr == nil {
				data["island"] = island
				data["payload"] = editPayload(island)
				if regions, regErr := islands.Regions(ctx); regErr == nil {
					data["categories"] = regions
				}
			}
			renderFailure(c, "edit", data, err)
			return
		}
		invalidateIslands(ctx, rdb)
		logrus.WithField("island", uuid).Info("Island deleted")
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

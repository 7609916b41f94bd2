package domain

// Image Model, an uploaded blob attached to an island
type Image struct {
	ID          uint   `gorm:"primaryKey" json:"-"`                      // Primary key
	UUID        string `gorm:"uniqueIndex;size:36;not null" json:"uuid"` // External identifier, also the file name
	Name        string `json:"name,omitempty"`                           // Original file name
	Ext         string `gorm:"size:16" json:"ext,omitempty"`             // File extension on disk
	ContentType string `json:"-"`                                        // Detected MIME type
	Data        []byte `json:"-"`                                        // Raw image bytes
	IslandID    uint   `gorm:"index" json:"-"`                           // Foreign key to Island
}

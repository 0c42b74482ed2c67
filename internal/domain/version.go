package domain

import "time"

// ContentVersion is an immutable snapshot of a content item's fields at a
// point in time. Rows are only ever created by the versioning engine and
// deleted as a cascade of content deletion.
// Table: content_versions
type ContentVersion struct {
	ID          string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ContentType ContentType    `gorm:"column:content_type;type:varchar(16);index:idx_content_versions_content" json:"content_type"`
	ContentID   string         `gorm:"column:content_id;type:varchar(36);index:idx_content_versions_content" json:"content_id"`
	Version     int            `gorm:"column:version" json:"version"`
	Title       string         `gorm:"column:title;type:varchar(200)" json:"title"`
	Body        string         `gorm:"column:body;type:text" json:"body"`
	Extra       map[string]any `gorm:"column:extra;serializer:json" json:"extra,omitempty"`
	CreatedByID string         `gorm:"column:created_by_id;type:varchar(36)" json:"created_by_id"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for ContentVersion
func (ContentVersion) TableName() string {
	return "content_versions"
}

package domain

import "time"

// Devotional is a daily reading tied to a scripture passage.
// Table: devotionals
type Devotional struct {
	ID            string        `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Title         string        `gorm:"column:title;type:varchar(200)" json:"title"`
	Body          string        `gorm:"column:body;type:text" json:"body"`
	Status        ContentStatus `gorm:"column:status;type:varchar(16);index;default:'DRAFT'" json:"status"`
	Version       int           `gorm:"column:version;default:1" json:"version"`
	AuthorID      string        `gorm:"column:author_id;type:varchar(36);index" json:"author_id"`
	ReviewerID    *string       `gorm:"column:reviewer_id;type:varchar(36)" json:"reviewer_id,omitempty"`
	ReviewComment *string       `gorm:"column:review_comment;type:text" json:"review_comment,omitempty"`
	ReviewedAt    *time.Time    `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	PublishedAt   *time.Time    `gorm:"column:published_at;index" json:"published_at,omitempty"`
	Scripture     string        `gorm:"column:scripture;type:varchar(200)" json:"scripture"`
	Tags          []string      `gorm:"column:tags;serializer:json" json:"tags,omitempty"`
	Featured      bool          `gorm:"column:featured;default:false" json:"featured"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Devotional
func (Devotional) TableName() string {
	return "devotionals"
}

func (d *Devotional) GetID() string              { return d.ID }
func (d *Devotional) GetTitle() string           { return d.Title }
func (d *Devotional) GetStatus() ContentStatus   { return d.Status }
func (d *Devotional) GetVersion() int            { return d.Version }
func (d *Devotional) GetAuthorID() string        { return d.AuthorID }
func (d *Devotional) GetPublishedAt() *time.Time { return d.PublishedAt }

// CreateDevotionalRequest is the payload for creating a devotional
type CreateDevotionalRequest struct {
	Title       string     `json:"title" binding:"required"`
	Body        string     `json:"body" binding:"required"`
	Scripture   string     `json:"scripture"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"published_at"`
}

// UpdateDevotionalRequest is the payload for editing a devotional
type UpdateDevotionalRequest struct {
	Title       *string    `json:"title"`
	Body        *string    `json:"body"`
	Scripture   *string    `json:"scripture"`
	Tags        []string   `json:"tags"`
	Featured    *bool      `json:"featured"`
	PublishedAt *time.Time `json:"published_at"`
}

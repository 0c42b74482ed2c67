package domain

import "time"

// Announcement is a church-wide notice with a display window and priority.
// Table: announcements
type Announcement struct {
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
	StartDate     *time.Time    `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate       *time.Time    `gorm:"column:end_date;index" json:"end_date,omitempty"`
	Priority      Priority      `gorm:"column:priority;type:varchar(8);default:'NORMAL'" json:"priority"`
	TargetGroups  []string      `gorm:"column:target_groups;serializer:json" json:"target_groups,omitempty"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Announcement
func (Announcement) TableName() string {
	return "announcements"
}

func (a *Announcement) GetID() string              { return a.ID }
func (a *Announcement) GetTitle() string           { return a.Title }
func (a *Announcement) GetStatus() ContentStatus   { return a.Status }
func (a *Announcement) GetVersion() int            { return a.Version }
func (a *Announcement) GetAuthorID() string        { return a.AuthorID }
func (a *Announcement) GetPublishedAt() *time.Time { return a.PublishedAt }

// CreateAnnouncementRequest is the payload for creating an announcement
type CreateAnnouncementRequest struct {
	Title        string     `json:"title" binding:"required"`
	Body         string     `json:"body" binding:"required"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	PublishedAt  *time.Time `json:"published_at"`
	Priority     Priority   `json:"priority"`
	TargetGroups []string   `json:"target_groups"`
}

// UpdateAnnouncementRequest is the payload for editing an announcement.
// Pointer fields distinguish "not sent" from zero values.
type UpdateAnnouncementRequest struct {
	Title        *string    `json:"title"`
	Body         *string    `json:"body"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	PublishedAt  *time.Time `json:"published_at"`
	Priority     *Priority  `json:"priority"`
	TargetGroups []string   `json:"target_groups"`
}

package domain

import (
	"fmt"
	"time"
)

// ContentType distinguishes the two content variants that share the
// review/publish lifecycle.
type ContentType string

const (
	ContentTypeAnnouncement ContentType = "announcement"
	ContentTypeDevotional   ContentType = "devotional"
)

// ParseContentType validates a content type string from a request
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypeAnnouncement, ContentTypeDevotional:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// ContentStatus is the workflow status of a content item
type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusReview    ContentStatus = "REVIEW"
	StatusScheduled ContentStatus = "SCHEDULED"
	StatusPublished ContentStatus = "PUBLISHED"
	StatusArchived  ContentStatus = "ARCHIVED"
	StatusRejected  ContentStatus = "REJECTED"
)

// Priority ranks announcements for display
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ValidPriority reports whether p is a known priority value
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ContentItem is the capability set the workflow and versioning engines
// need from a content record, independent of its concrete type.
type ContentItem interface {
	GetID() string
	GetTitle() string
	GetStatus() ContentStatus
	GetVersion() int
	GetAuthorID() string
	GetPublishedAt() *time.Time
}

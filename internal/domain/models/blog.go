// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog visibility states.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// BlogStatuses lists every valid blog status.
var BlogStatuses = []string{BlogDraft, BlogPublished}

// Blog is a content-management post. New posts start as drafts.
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Thumbnail string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Content   string             `bson:"content" json:"content"` // sanitized HTML
	CreatedBy string             `bson:"createdBy" json:"createdBy"`
	Status    string             `bson:"status" json:"status"` // draft | published

	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsValidBlogStatus reports whether status is one of BlogStatuses.
func IsValidBlogStatus(status string) bool { return contains(BlogStatuses, status) }

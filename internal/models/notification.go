package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification is an inbox entry stored in MongoDB.
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"`
	ActorID     uint               `json:"actorId" bson:"actor_id"`
	ActorName   string             `json:"actorName" bson:"actor_name"`
	RecipientID uint               `json:"recipientId" bson:"recipient_id"`
	PostID      uint               `json:"postId,omitempty" bson:"post_id,omitempty"`
	PostSlug    string             `json:"postSlug,omitempty" bson:"post_slug,omitempty"`
	CommentID   uint               `json:"commentId,omitempty" bson:"comment_id,omitempty"`
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"isRead" bson:"is_read"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topic groups the top-level questions asked for one building type.
// #DATA_ASSUMPTION: DisplayOrder only drives UI ordering and never affects scoring
// #CARDINALITY_ASSUMPTION: BuildingType 1:N Topics
type Topic struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	BuildingType string             `bson:"building_type" json:"building_type"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for topics
func (Topic) CollectionName() string {
	return "topics"
}

// BeforeCreate sets default values before inserting a new topic
func (t *Topic) BeforeCreate() {
	now := time.Now().UTC()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	t.BuildingType = NormalizeBuildingType(t.BuildingType)
	t.CreatedAt = now
	t.UpdatedAt = now
}

// BeforeUpdate sets the UpdatedAt timestamp
func (t *Topic) BeforeUpdate() {
	t.BuildingType = NormalizeBuildingType(t.BuildingType)
	t.UpdatedAt = time.Now().UTC()
}

// NormalizeBuildingType lowercases and trims a building type key
func NormalizeBuildingType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TopicTree is a topic together with its assembled question tree
type TopicTree struct {
	Topic     Topic      `json:"topic"`
	Questions []Question `json:"questions"`
}

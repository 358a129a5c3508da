package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateType tells system templates apart from coach-made ones.
type TemplateType string

const (
	TemplatePredefined  TemplateType = "predefined"
	TemplateUserCreated TemplateType = "user_created"
)

// Template is a reusable session tree. Plans can be materialized from it.
type Template struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Description        string              `bson:"description" json:"description"`
	Type               TemplateType        `bson:"type" json:"type"`
	PredefinedCategory string              `bson:"predefinedCategory,omitempty" json:"predefinedCategory,omitempty"` // e.g. "basic_strength"
	CreatedBy          string              `bson:"createdBy,omitempty" json:"createdBy,omitempty"`                   // Coach code, user templates only
	OriginalPlanID     *primitive.ObjectID `bson:"originalPlanId,omitempty" json:"originalPlanId,omitempty"`
	Sessions           []Session           `bson:"sessions" json:"sessions"`
	UsageCount         int                 `bson:"usageCount" json:"usageCount"`
	IsActive           bool                `bson:"isActive" json:"isActive"` // Soft delete flag
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (t *Template) IsPredefined() bool {
	return t.Type == TemplatePredefined
}

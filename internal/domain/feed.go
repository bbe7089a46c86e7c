package domain

import "github.com/google/uuid"

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

// PropertyChange is one incremental change event on the property
// collection. Removed events carry the id only.
type PropertyChange struct {
	Type       ChangeType `json:"type"`
	PropertyID uuid.UUID  `json:"property_id"`
	Property   *Property  `json:"property,omitempty"`
}

// ChangeBatch is the unit of delivery on the live channel. Batches must
// be applied in arrival order; changes within a batch apply first to last.
type ChangeBatch struct {
	Changes []PropertyChange `json:"changes"`
}

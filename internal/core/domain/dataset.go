package domain

import "time"

// Dataset is a metadata record describing a registered dataset.
type Dataset struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Rows        int64     `json:"rows" bson:"rows"`
	Owner       int64     `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

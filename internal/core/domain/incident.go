package domain

import "time"

// Severity classifies a cyber incident.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities lists all valid severities in ascending order of impact.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	for _, known := range Severities {
		if s == known {
			return true
		}
	}
	return false
}

// Incident is a single security incident record.
type Incident struct {
	ID           int64     `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Severity     Severity  `json:"severity" bson:"severity"`
	DateReported time.Time `json:"date_reported" bson:"date_reported"`
	ReportedBy   int64     `json:"reported_by,omitempty" bson:"reported_by,omitempty"`
}

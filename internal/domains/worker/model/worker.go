package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkerProfile is a worker's public record with all associations loaded.
// UserID is set once at creation and determines write authorization.
type WorkerProfile struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Name            string          `json:"name"`
	Bio             string          `json:"bio"`
	ExperienceYears int             `json:"experienceYears"`
	Active          bool            `json:"active"`
	TravelRadiusKm  *float64        `json:"travelRadiusKm,omitempty"`
	Metadata        *WorkerMetadata `json:"metadata,omitempty"`

	Categories     []NamedEntity `json:"categories"`
	Skills         []NamedEntity `json:"skills"`
	Certifications []NamedEntity `json:"certifications"`
	BaseLocation   *BaseLocation `json:"baseLocation,omitempty"`
	ServiceAreas   []ServiceArea `json:"serviceAreas"`

	// DistanceKm is computed per request when caller coordinates are
	// supplied; nil when the profile has no base location.
	DistanceKm *float64 `json:"distanceKm,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NamedEntity is a category, skill or certification. Entities are
// deduplicated by unique name across all profiles.
type NamedEntity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BaseLocation struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type ServiceArea struct {
	ID   uuid.UUID `json:"id"`
	City string    `json:"city"`
	Note *string   `json:"note,omitempty"`
}

// WorkerMetadata mirrors the free-form metadata JSON column. Every branch
// is optional and independently settable.
type WorkerMetadata struct {
	Profile *struct {
		CompletionPercentage *int    `json:"completionPercentage,omitempty"`
		Visibility           *string `json:"visibility,omitempty"` // public, private, hidden
		Featured             *bool   `json:"featured,omitempty"`
	} `json:"profile,omitempty"`

	Verification *struct {
		Status             *string `json:"status,omitempty"` // pending, verified, rejected
		DocumentsSubmitted *bool   `json:"documentsSubmitted,omitempty"`
		VerifiedAt         *string `json:"verifiedAt,omitempty"`
		Notes              *string `json:"notes,omitempty"`
	} `json:"verification,omitempty"`

	Preferences *struct {
		Notifications *struct {
			Email *bool `json:"email,omitempty"`
			SMS   *bool `json:"sms,omitempty"`
			Push  *bool `json:"push,omitempty"`
		} `json:"notifications,omitempty"`
		Language *string `json:"language,omitempty"`
	} `json:"preferences,omitempty"`

	Internal *struct {
		AdminNotes *string `json:"adminNotes,omitempty"`
		RiskFlag   *bool   `json:"riskFlag,omitempty"`
	} `json:"internal,omitempty"`
}

// WorkerOwner is the trimmed owner lookup result used by trusted
// internal callers.
type WorkerOwner struct {
	WorkerID uuid.UUID `json:"workerId"`
	UserID   uuid.UUID `json:"userId"`
}

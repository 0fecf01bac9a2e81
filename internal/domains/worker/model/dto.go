package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

type BaseLocationInput struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (b BaseLocationInput) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Address, validation.Required.Error("address is required")),
		validation.Field(&b.City, validation.Required.Error("city is required")),
		validation.Field(&b.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&b.Lon, validation.Min(-180.0), validation.Max(180.0)),
	)
}

type ServiceAreaInput struct {
	City string  `json:"city"`
	Note *string `json:"note,omitempty"`
}

func (s ServiceAreaInput) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.City, validation.Required.Error("city is required")),
	)
}

// CreateWorkerRequest carries everything a validated POST may set.
type CreateWorkerRequest struct {
	Name            string             `json:"name"`
	Bio             string             `json:"bio"`
	Categories      []string           `json:"categories"`
	Skills          []string           `json:"skills,omitempty"`
	Certifications  []string           `json:"certifications,omitempty"`
	ExperienceYears *int               `json:"experienceYears,omitempty"`
	BaseLocation    *BaseLocationInput `json:"baseLocation,omitempty"`
	ServiceAreas    []ServiceAreaInput `json:"serviceAreas,omitempty"`
	TravelRadiusKm  *float64           `json:"travelRadiusKm,omitempty"`
	Active          *bool              `json:"active,omitempty"`
	Metadata        *WorkerMetadata    `json:"metadata,omitempty"`
}

func (r CreateWorkerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bio,
			validation.Required.Error("bio is required"),
			validation.Length(1, 2000),
		),
		validation.Field(&r.Categories,
			validation.Required.Error("at least one category is required"),
			validation.Length(1, 0).Error("at least one category is required"),
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.Skills,
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.Certifications,
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.ExperienceYears, validation.Min(0)),
		validation.Field(&r.BaseLocation),
		validation.Field(&r.ServiceAreas),
		validation.Field(&r.TravelRadiusKm, validation.Min(0.0)),
	)
}

// UpdateWorkerRequest allows any subset of the create fields. Association
// collections (categories, skills, certifications, baseLocation,
// serviceAreas) pass validation but are not reconciled by the update
// path; only scalar profile fields are applied.
type UpdateWorkerRequest struct {
	Name            *string            `json:"name,omitempty"`
	Bio             *string            `json:"bio,omitempty"`
	Categories      []string           `json:"categories,omitempty"`
	Skills          []string           `json:"skills,omitempty"`
	Certifications  []string           `json:"certifications,omitempty"`
	ExperienceYears *int               `json:"experienceYears,omitempty"`
	BaseLocation    *BaseLocationInput `json:"baseLocation,omitempty"`
	ServiceAreas    []ServiceAreaInput `json:"serviceAreas,omitempty"`
	TravelRadiusKm  *float64           `json:"travelRadiusKm,omitempty"`
	Active          *bool              `json:"active,omitempty"`
	Metadata        *WorkerMetadata    `json:"metadata,omitempty"`
}

func (r UpdateWorkerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Bio, validation.NilOrNotEmpty, validation.Length(1, 2000)),
		validation.Field(&r.Categories,
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.Skills,
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.Certifications,
			validation.Each(validation.Required, validation.Length(1, 100)),
		),
		validation.Field(&r.ExperienceYears, validation.Min(0)),
		validation.Field(&r.TravelRadiusKm, validation.Min(0.0)),
	)
}

// HasScalarFields reports whether the patch touches any field the update
// path actually applies.
func (r UpdateWorkerRequest) HasScalarFields() bool {
	return r.Name != nil || r.Bio != nil || r.ExperienceYears != nil ||
		r.TravelRadiusKm != nil || r.Active != nil || r.Metadata != nil
}

// ListFilters narrows the profile listing.
type ListFilters struct {
	Categories []string
	Active     *bool
}

// Coordinates are the caller's location for distance computation.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ListWorkersRequest is the parsed query surface of GET /workers.
type ListWorkersRequest struct {
	Filters        ListFilters
	Limit          int
	Offset         int
	UserLocation   *Coordinates
	SortByDistance bool
}

func (r ListWorkersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit, validation.Min(0)),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// Pagination mirrors the page metadata contract of the list endpoint.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

type ListWorkersResponse struct {
	Workers    []*WorkerProfile `json:"workers"`
	Pagination Pagination       `json:"pagination"`
}

type ServiceCheckResponse struct {
	WorkerID      uuid.UUID `json:"workerId"`
	Service       string    `json:"service"`
	OffersService bool      `json:"offersService"`
}

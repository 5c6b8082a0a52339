package service

import (
	"featuretoggle/entity"
)

// FeatureResponse is the feature shape returned to the request layer. A
// zero-valued response stands in for "not found" on the manager's read and
// delete paths.
type FeatureResponse struct {
	ID          string   `json:"id"`
	Feature     string   `json:"feature"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Active      bool     `json:"active"`
}

// PaginationResponse is the envelope for paged listings. PreviousPage and
// NextPage are omitted at the respective edges.
type PaginationResponse struct {
	Items        []FeatureResponse `json:"items"`
	TotalRecords int64             `json:"totalRecords"`
	TotalPages   int               `json:"totalPages"`
	Page         int               `json:"page"`
	Quantity     int               `json:"quantity"`
	PreviousPage *int              `json:"previousPage,omitempty"`
	NextPage     *int              `json:"nextPage,omitempty"`
}

// DashboardResponse carries the aggregated feature counts.
type DashboardResponse struct {
	TotalActives   int `json:"totalActives"`
	TotalInactives int `json:"totalInactives"`
	TotalFeatures  int `json:"totalFeatures"`
}

func toFeatureResponse(feature *entity.Feature) FeatureResponse {
	return FeatureResponse{
		ID:          feature.ID.String(),
		Feature:     feature.Feature,
		Name:        feature.Name,
		Description: feature.Description,
		Tags:        feature.Tags,
		Active:      feature.Active,
	}
}

func toFeatureResponses(features []*entity.Feature) []FeatureResponse {
	responses := make([]FeatureResponse, 0, len(features))
	for _, feature := range features {
		responses = append(responses, toFeatureResponse(feature))
	}
	return responses
}

package services

import (
	"strings"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

const (
	DefaultSearchLimit    = 30
	DefaultSearchLanguage = "nl"
	DefaultSearchRadius   = "30"

	// No geocoding yet: every location is pinned to Ghent.
	FallbackLatitude  = "51.04999923706055"
	FallbackLongitude = "3.7167000770568848"
	FallbackZipCode   = "9000"
)

var SearchFacetKeys = []string{"FUNCTION_DOMAIN", "LOCATION", "OFFICE", "PROVINCE"}

// ToJobSearchRequest maps extracted candidate info onto a job search query.
func ToJobSearchRequest(info models.CandidateInfo) models.JobSearchRequest {
	facets := make([]models.Facet, 0, len(SearchFacetKeys))
	for _, key := range SearchFacetKeys {
		facets = append(facets, models.Facet{Key: key, SelectedValues: []string{}})
	}

	req := models.JobSearchRequest{
		Limit:      DefaultSearchLimit,
		QueryTexts: []string{},
		Language:   DefaultSearchLanguage,
		Facets:     facets,
		Filters:    []any{},
	}

	if function := strings.TrimSpace(info.Function); function != "" {
		req.QueryTexts = []string{function}
	}

	if location := strings.TrimSpace(info.Location); location != "" {
		req.Location = &models.SearchLocation{
			LocationCoordinates: []models.LocationCoordinate{{
				CityName:  location,
				Latitude:  FallbackLatitude,
				Longitude: FallbackLongitude,
				Name:      location,
				ZipCode:   FallbackZipCode,
			}},
			Radius: DefaultSearchRadius,
		}
	}

	return req
}

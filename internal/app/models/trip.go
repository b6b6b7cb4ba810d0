package models

import "time"

// SavedTrip is an itinerary as kept by the saved-trips store. The itinerary
// fields are inlined next to the generated id, save time and cover image.
type SavedTrip struct {
	Itinerary
	ID      string    `json:"id"`
	SavedAt time.Time `json:"savedAt"`
	Image   string    `json:"image,omitempty"`
}

// SaveTripRequest is the body accepted when saving a trip.
type SaveTripRequest struct {
	Itinerary Itinerary `json:"itinerary" binding:"required"`
	Image     string    `json:"image"`
}

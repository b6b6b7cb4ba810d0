package models

// PlaceDetail is the model-produced description of a single famous place.
type PlaceDetail struct {
	Name              string   `json:"name" validate:"required"`
	Category          string   `json:"category"`
	Location          string   `json:"location"`
	Continent         string   `json:"continent"`
	Description       string   `json:"description"`
	History           string   `json:"history"`
	Highlights        []string `json:"highlights"`
	BestTime          string   `json:"bestTime"`
	EntryFee          string   `json:"entryFee"`
	Duration          string   `json:"duration"`
	Tips              []string `json:"tips"`
	NearbyAttractions []string `json:"nearbyAttractions"`
	FunFact           string   `json:"funFact"`
}

// PlaceSummary is one entry of a place listing.
type PlaceSummary struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Continent     string   `json:"continent"`
	Tagline       string   `json:"tagline"`
	Period        string   `json:"period"`
	Rating        float64  `json:"rating"`
	Visitors      string   `json:"visitors"`
	Tags          []string `json:"tags"`
	UnsplashQuery string   `json:"unsplashQuery"`
	Category      string   `json:"category"`
}

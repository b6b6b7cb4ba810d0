package models

// ActivityType enumerates the kinds of activity an itinerary may contain.
type ActivityType string

const (
	ActivityAttraction ActivityType = "attraction"
	ActivityFood       ActivityType = "food"
	ActivityAdventure  ActivityType = "adventure"
	ActivityCulture    ActivityType = "culture"
	ActivityRelaxation ActivityType = "relaxation"
	ActivityShopping   ActivityType = "shopping"
)

// ActivityTypes lists every accepted ActivityType in prompt order.
var ActivityTypes = []ActivityType{
	ActivityAttraction,
	ActivityFood,
	ActivityAdventure,
	ActivityCulture,
	ActivityRelaxation,
	ActivityShopping,
}

// Valid reports whether t is one of the enumerated activity types.
func (t ActivityType) Valid() bool {
	for _, at := range ActivityTypes {
		if t == at {
			return true
		}
	}
	return false
}

type Activity struct {
	Time        string       `json:"time" validate:"required"`
	Activity    string       `json:"activity" validate:"required"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Type        ActivityType `json:"type" validate:"required,oneof=attraction food adventure culture relaxation shopping"`
}

// Meals maps breakfast/lunch/dinner to a suggestion.
type Meals map[string]string

type DayPlan struct {
	Day           int        `json:"day" validate:"gte=1"`
	Theme         string     `json:"theme" validate:"required"`
	Activities    []Activity `json:"activities" validate:"required,min=1,dive"`
	Meals         Meals      `json:"meals,omitempty"`
	Accommodation string     `json:"accommodation,omitempty"`
}

// Itinerary is the multi-day plan produced by the model.
type Itinerary struct {
	Destination string    `json:"destination" validate:"required"`
	Country     string    `json:"country"`
	Days        int       `json:"days" validate:"gte=1"`
	TravelStyle string    `json:"travelStyle"`
	Overview    string    `json:"overview" validate:"required"`
	Tips        []string  `json:"tips"`
	Itinerary   []DayPlan `json:"itinerary" validate:"required,min=1,dive"`
}

// ItineraryRequest carries the inputs of an itinerary generation.
type ItineraryRequest struct {
	Destination string   `json:"destination" binding:"required"`
	Country     string   `json:"country"`
	Days        int      `json:"days" binding:"required"`
	TravelStyle string   `json:"travelStyle"`
	Interests   []string `json:"interests"`
}

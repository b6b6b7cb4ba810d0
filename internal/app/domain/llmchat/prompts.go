package llmchat

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

const (
	defaultTravelStyle = "Cultural"
	defaultInterest    = "General Sightseeing"
	placesPerListing   = 12
	quickFactsCount    = 5
	regionAll          = "All"
)

// Casers are stateful, so each call builds its own.
func titleLabel(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func lowerLabel(s string) string {
	return cases.Lower(language.English).String(strings.TrimSpace(s))
}

// placeLabel renders "Destination, Country", or just the destination.
func placeLabel(destination, country string) string {
	if strings.TrimSpace(country) == "" {
		return destination
	}
	return fmt.Sprintf("%s, %s", destination, country)
}

func activityTypeList() string {
	quoted := make([]string, 0, len(models.ActivityTypes))
	for _, t := range models.ActivityTypes {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}
	return strings.Join(quoted, ", ")
}

func getItineraryPrompt(req models.ItineraryRequest) string {
	return fmt.Sprintf(`You are an expert travel planner. Create a detailed %[1]d-day itinerary for %[2]s.

Travel Style: %[3]s
Interests: %[4]s

IMPORTANT: Respond with ONLY a valid JSON object. No markdown, no code blocks, no extra text before or after.

The JSON must follow this exact structure:
{
  "destination": %[5]q,
  "country": %[6]q,
  "days": %[1]d,
  "travelStyle": %[3]q,
  "overview": "A 2-3 sentence overview of the trip",
  "tips": ["tip1", "tip2", "tip3"],
  "itinerary": [
    {
      "day": 1,
      "theme": "Day theme title",
      "activities": [
        {
          "time": "09:00 AM",
          "activity": "Activity name",
          "description": "Brief description of this activity",
          "duration": "2 hours",
          "type": "attraction"
        }
      ],
      "meals": {
        "breakfast": "Specific restaurant or food suggestion",
        "lunch": "Specific restaurant or food suggestion",
        "dinner": "Specific restaurant or food suggestion"
      },
      "accommodation": "Specific hotel or neighborhood suggestion"
    }
  ]
}

Number the days from 1 to %[1]d, one entry per day.
Activity types must be one of: %[7]s
Include 3-5 activities per day. Make it realistic and fun!`,
		req.Days,
		placeLabel(req.Destination, req.Country),
		req.TravelStyle,
		strings.Join(req.Interests, ", "),
		req.Destination,
		req.Country,
		activityTypeList(),
	)
}

func getChatSystemInstruction(destination, country string) string {
	return fmt.Sprintf(`You are WanderAI, a friendly and knowledgeable travel assistant specializing in %s.
You provide helpful, accurate, and engaging travel advice. Keep responses concise (2-4 sentences) but informative.
Focus on practical tips, local insights, hidden gems, and authentic experiences.`, placeLabel(destination, country))
}

func getPlaceDetailsPrompt(name, category string) string {
	return fmt.Sprintf(`Give me detailed information about %[1]q which is a famous %[2]s place.

Respond with ONLY a valid JSON object (no markdown, no code fences):
{
  "name": %[1]q,
  "category": %[3]q,
  "location": "City, Country",
  "continent": "Continent name",
  "description": "3-4 sentence description of this place",
  "history": "2-3 sentences of historical background",
  "highlights": ["highlight 1", "highlight 2", "highlight 3", "highlight 4"],
  "bestTime": "Best time of year to visit",
  "entryFee": "Approximate entry fee or 'Free'",
  "duration": "Recommended visit duration",
  "tips": ["practical tip 1", "practical tip 2", "practical tip 3"],
  "nearbyAttractions": ["nearby place 1", "nearby place 2", "nearby place 3"],
  "funFact": "One interesting fun fact about this place"
}`, name, lowerLabel(category), category)
}

// regionClause scopes a listing; "All" or an empty region means worldwide.
func regionClause(region string) string {
	region = strings.TrimSpace(region)
	if region == "" || strings.EqualFold(region, regionAll) {
		return " around the world"
	}
	return " in " + region
}

func getPlacesPrompt(category, region string) string {
	return fmt.Sprintf(`List %d famous %s places%s.

Respond with ONLY a valid JSON array (no markdown, no code fences):
[
  {
    "name": "Place name",
    "location": "City, Country",
    "continent": "Continent",
    "tagline": "One catchy sentence about this place",
    "period": "Historical period or 'Modern' for tourist sites",
    "rating": 4.8,
    "visitors": "Annual visitors estimate like '5 million+'",
    "tags": ["tag1", "tag2"],
    "unsplashQuery": "specific landmark photo search keyword"
  }
]

Make the list diverse and globally recognized. Rating should be between 4.0 and 5.0.`,
		placesPerListing, lowerLabel(category), regionClause(region))
}

func getQuickFactsPrompt(destination, country string) string {
	return fmt.Sprintf(`Give me %d quick, interesting travel facts about %s.
Format as a JSON array of strings (no markdown):
["fact 1", "fact 2", "fact 3", "fact 4", "fact 5"]`, quickFactsCount, placeLabel(destination, country))
}

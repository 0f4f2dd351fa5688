package scope

import "strings"

// Result of classifying one question. When Allowed is false, Answer
// carries the canned refusal to return verbatim.
type Result struct {
	Allowed bool
	Answer  string
}

// Canned refusals returned without ever touching the ranker or the
// generation provider.
const (
	CountryRestrictedAnswer = "I can only answer questions about RWANDA based on official NISR (National Institute of Statistics of Rwanda) datasets. I do not have data about other countries like Zambia, Kenya, Uganda, or any others. Please ask specifically about Rwanda's nutrition, health, or survey data."

	MissingLocaleAnswer = "Please specify that you're asking about RWANDA. I can only provide information about Rwanda based on NISR (National Institute of Statistics of Rwanda) datasets. For example, ask: 'What is the stunting rate in Rwanda?'"

	OffTopicAnswer = "I can only answer questions related to NISR (National Institute of Statistics of Rwanda) datasets, which cover:\n\n✓ Nutrition indicators (stunting, wasting, anemia, micronutrient deficiencies)\n✓ Health surveys (DHS, EICV)\n✓ Breastfeeding and feeding practices\n✓ Child health and development\n✓ Demographic and household data\n\nYour question appears to be about a topic outside these datasets. Please ask about Rwanda's nutrition, health, or survey data."

	NoDataAnswer = "I don't have NISR data to answer that specific question. My responses are based on official NISR datasets covering nutrition indicators and survey metadata from Rwanda. Please ask about topics like stunting, wasting, anemia, breastfeeding, or NISR surveys."
)

var otherCountries = []string{
	"zambia", "zimbabwe", "uganda", "kenya", "tanzania", "burundi",
	"congo", "drc", "ethiopia", "somalia", "sudan", "malawi", "mozambique",
	"south africa", "nigeria", "ghana", "senegal", "mali", "niger",
	"usa", "america", "united states", "china", "india", "japan",
	"europe", "asia", "australia", "canada", "mexico", "brazil",
}

var rwandaAliases = []string{"rwanda", "rwandan", "kigali", "nisr"}

// Nutrition terms that, without a Rwanda alias, suggest the question is
// about some other country's data.
var nutritionKeywords = []string{
	"stunting", "wasting", "nutrition", "malnutrition",
	"anemia", "anaemia", "breastfeeding", "micronutrient",
}

var allowedTopics = []string{
	"stunting", "wasting", "nutrition", "malnutrition", "anemia", "anaemia",
	"breastfeeding", "micronutrient", "hunger", "food", "health",
	"survey", "dhs", "eicv", "children", "vitamin", "iron", "zinc",
	"feeding", "diet", "maternal", "infant", "child", "pregnancy",
	"underweight", "overweight", "growth", "development", "household",
	"agriculture", "demographic", "statistics", "indicator",
}

var deniedTopics = []string{
	"weather", "climate", "temperature", "rain", "forecast",
	"sport", "football", "soccer", "basketball", "tennis",
	"politics", "election", "president", "government", "parliament",
	"tourism", "hotel", "travel", "vacation", "safari",
	"economy", "gdp", "inflation", "currency", "stock",
	"entertainment", "movie", "music", "celebrity", "concert",
	"technology", "phone", "computer", "internet", "software",
}

// Broader relevance list used for the isRelevant flag on the no-data
// response, not for gating.
var relatedKeywords = []string{
	"rwanda", "rwandan", "kigali", "nisr",
	"stunting", "wasting", "nutrition", "malnutrition", "anemia", "anaemia",
	"breastfeeding", "micronutrient", "hunger", "food security",
	"dhs", "eicv", "survey", "health", "children", "vitamin",
	"iron", "zinc", "feeding", "diet", "maternal", "infant",
	"underweight", "overweight", "growth", "development",
}

// Classify runs the three-stage gate. Order is load-bearing: the
// out-of-scope country check runs before anything else, so a question
// naming another country is rejected even if it also mentions Rwanda.
func Classify(question string) Result {
	q := strings.ToLower(question)

	if isOutOfScope(q) {
		return Result{Answer: CountryRestrictedAnswer}
	}
	if !containsAny(q, rwandaAliases) {
		return Result{Answer: MissingLocaleAnswer}
	}
	if !isOnTopic(q) {
		return Result{Answer: OffTopicAnswer}
	}
	return Result{Allowed: true}
}

// IsRelated reports whether the question is plausibly about Rwanda's
// nutrition and health data.
func IsRelated(question string) bool {
	return containsAny(strings.ToLower(question), relatedKeywords)
}

func isOutOfScope(q string) bool {
	if containsAny(q, otherCountries) {
		return true
	}
	// Nutrition question with no Rwanda alias is likely about some
	// other country.
	return containsAny(q, nutritionKeywords) && !containsAny(q, rwandaAliases)
}

func isOnTopic(q string) bool {
	if containsAny(q, deniedTopics) {
		return false
	}
	return containsAny(q, allowedTopics)
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

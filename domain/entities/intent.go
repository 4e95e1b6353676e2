package entities

import "strings"

// IntentCategory is the closed set of request categories the router can
// produce. Every utterance that survives the exit check maps to exactly one.
type IntentCategory string

const (
	CategoryTherapy       IntentCategory = "therapy"
	CategoryNotepad       IntentCategory = "notepad"
	CategoryMessaging     IntentCategory = "messaging"
	CategoryMeeting       IntentCategory = "meeting"
	CategoryBrightness    IntentCategory = "brightness"
	CategoryVolume        IntentCategory = "volume"
	CategoryVisualize     IntentCategory = "visualize"
	CategoryCloseApps     IntentCategory = "close_apps"
	CategoryNews          IntentCategory = "news"
	CategoryCalendar      IntentCategory = "calendar"
	CategoryFileRetrieval IntentCategory = "file_retrieval"
	CategoryGeneral       IntentCategory = "general"
)

// Categories lists every valid category, in a stable order usable for
// classifier prompts.
func Categories() []IntentCategory {
	return []IntentCategory{
		CategoryTherapy,
		CategoryNotepad,
		CategoryMessaging,
		CategoryMeeting,
		CategoryBrightness,
		CategoryVolume,
		CategoryVisualize,
		CategoryCloseApps,
		CategoryNews,
		CategoryCalendar,
		CategoryFileRetrieval,
		CategoryGeneral,
	}
}

// ParseCategory validates a free-text label against the category allow-list.
// Model output is untrusted; anything that does not match exactly one known
// category reports ok=false and the caller falls back to its default.
func ParseCategory(label string) (IntentCategory, bool) {
	cleaned := IntentCategory(strings.ToLower(strings.TrimSpace(label)))
	for _, c := range Categories() {
		if cleaned == c {
			return c, true
		}
	}
	return "", false
}

// ClassificationSource records which tier produced a decision.
type ClassificationSource string

const (
	SourceKeywordMatch ClassificationSource = "keyword"
	SourceModel        ClassificationSource = "model"
	SourceDefault      ClassificationSource = "default"
)

// ClassificationDecision is the outcome of intent routing for one utterance.
type ClassificationDecision struct {
	Category IntentCategory
	Source   ClassificationSource
}

// LevelAdjustment is the parsed numeric intent of a brightness or volume
// utterance. At most one of Delta and Absolute is set; both nil means the
// utterance carried no actionable value.
type LevelAdjustment struct {
	Delta    *int
	Absolute *int
}

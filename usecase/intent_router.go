package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const classifyPrompt = `Classify the user's request into exactly one of these categories:

therapy - emotional support, venting, feelings
notepad - writing notes or articles
messaging - drafting or sending a message to someone
meeting - scheduling or joining online meetings
brightness - screen brightness changes
volume - sound or audio level changes
visualize - turning on-screen data into charts or files
close_apps - closing applications or windows
news - current events and headlines
calendar - calendar events and appointments
file_retrieval - finding or opening files and documents
general - anything else

Reply with only the category name, nothing else.

User said: %q`

// keywordRule maps surface phrases to a category. Rules are evaluated in
// order and the first match wins, so broader phrasings must come later.
type keywordRule struct {
	category entities.IntentCategory
	match    func(text string) bool
}

func anyOf(phrases ...string) func(string) bool {
	return func(text string) bool {
		for _, phrase := range phrases {
			if strings.Contains(text, phrase) {
				return true
			}
		}
		return false
	}
}

var keywordRules = []keywordRule{
	{entities.CategoryCloseApps, func(text string) bool {
		return strings.Contains(text, "close") &&
			anyOf("app", "application", "window")(text)
	}},
	{entities.CategoryCalendar, anyOf("calendar", "schedule", "appointment")},
	{entities.CategoryVolume, anyOf("volume", "sound", "audio level")},
	{entities.CategoryBrightness, anyOf("brightness", "screen", "dim")},
	{entities.CategoryMeeting, anyOf("zoom", "meeting", "conference")},
	{entities.CategoryFileRetrieval, func(text string) bool {
		return anyOf("retrieve", "open", "find", "get")(text) &&
			anyOf("file", "document", "doc")(text)
	}},
	{entities.CategoryVisualize, anyOf("visualize", "plot", "graph")},
	{entities.CategoryNews, anyOf("news", "headlines", "latest events")},
	{entities.CategoryNotepad, anyOf("notepad", "note", "write down")},
	{entities.CategoryMessaging, anyOf("message", "send message", "text")},
}

// IntentRouter classifies utterances into intent categories. A keyword tier
// handles unambiguous phrasings without a model round trip; everything else
// goes to the language model, with General as the fallback.
type IntentRouter struct {
	model  repositories.LanguageModel
	logger *zap.Logger
}

// NewIntentRouter creates an IntentRouter backed by the given language model.
func NewIntentRouter(model repositories.LanguageModel, logger *zap.Logger) *IntentRouter {
	return &IntentRouter{model: model, logger: logger}
}

// Classify resolves the utterance to a category and records how the
// decision was made.
func (r *IntentRouter) Classify(ctx context.Context, utterance string) entities.ClassificationDecision {
	cleaned := cleanUtterance(utterance)

	for _, rule := range keywordRules {
		if rule.match(cleaned) {
			r.logger.Debug("Intent matched by keyword",
				zap.String("category", string(rule.category)))
			return entities.ClassificationDecision{
				Category: rule.category,
				Source:   entities.SourceKeywordMatch,
			}
		}
	}

	label, err := r.model.Complete(ctx, fmt.Sprintf(classifyPrompt, utterance))
	if err != nil {
		r.logger.Warn("Intent classifier unavailable, defaulting to general", zap.Error(err))
		return entities.ClassificationDecision{
			Category: entities.CategoryGeneral,
			Source:   entities.SourceDefault,
		}
	}

	category, ok := entities.ParseCategory(label)
	if !ok {
		r.logger.Debug("Intent classifier answered off-taxonomy, defaulting to general",
			zap.String("label", label))
		return entities.ClassificationDecision{
			Category: entities.CategoryGeneral,
			Source:   entities.SourceDefault,
		}
	}

	return entities.ClassificationDecision{
		Category: category,
		Source:   entities.SourceModel,
	}
}

var firstInteger = regexp.MustCompile(`-?\d+`)

// ParseLevelAdjustment extracts a brightness/volume change request from the
// utterance. Branches are checked in order; only the first integer literal in
// the text is used.
func ParseLevelAdjustment(text string) entities.LevelAdjustment {
	cleaned := cleanUtterance(text)

	amount, hasAmount := extractInteger(cleaned)
	switch {
	case strings.Contains(cleaned, "increase") || strings.Contains(cleaned, "up"):
		if !hasAmount {
			amount = 10
		}
		return entities.LevelAdjustment{Delta: &amount}
	case strings.Contains(cleaned, "decrease") || strings.Contains(cleaned, "down"):
		if !hasAmount {
			amount = 10
		}
		amount = -amount
		return entities.LevelAdjustment{Delta: &amount}
	case strings.Contains(cleaned, "set"):
		if !hasAmount {
			amount = 50
		}
		return entities.LevelAdjustment{Absolute: &amount}
	default:
		return entities.LevelAdjustment{}
	}
}

func extractInteger(text string) (int, bool) {
	match := firstInteger.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
)

func TestClassifyKeywordTier(t *testing.T) {
	tests := []struct {
		utterance string
		want      entities.IntentCategory
	}{
		{"close my apps", entities.CategoryCloseApps},
		{"close all browser windows", entities.CategoryCloseApps},
		{"please close this application", entities.CategoryCloseApps},
		{"add a meeting to my calendar", entities.CategoryCalendar},
		{"what's on my schedule tomorrow", entities.CategoryCalendar},
		{"turn the volume up", entities.CategoryVolume},
		{"lower the sound a bit", entities.CategoryVolume},
		{"increase brightness by 20", entities.CategoryBrightness},
		{"dim the display", entities.CategoryBrightness},
		{"start a zoom call", entities.CategoryMeeting},
		{"open the quarterly report document", entities.CategoryFileRetrieval},
		{"find my resume file", entities.CategoryFileRetrieval},
		{"plot this data for me", entities.CategoryVisualize},
		{"what's in the news today", entities.CategoryNews},
		{"write down that I owe Sam lunch", entities.CategoryNotepad},
		{"send a message to my brother", entities.CategoryMessaging},
	}

	// Model errors on purpose so any model-tier fallthrough fails the test
	// with a Default source.
	router := NewIntentRouter(&stubModel{completeErr: errors.New("should not be called")}, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			decision := router.Classify(context.Background(), tt.utterance)
			if decision.Category != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.utterance, decision.Category, tt.want)
			}
			if decision.Source != entities.SourceKeywordMatch {
				t.Errorf("Classify(%q) source = %s, want keyword", tt.utterance, decision.Source)
			}
		})
	}
}

func TestClassifyKeywordPriority(t *testing.T) {
	// "close the calendar window" mentions calendar but close+window ranks
	// first.
	router := NewIntentRouter(&stubModel{}, zap.NewNop())
	decision := router.Classify(context.Background(), "close the calendar window")
	if decision.Category != entities.CategoryCloseApps {
		t.Errorf("Expected close_apps to win priority, got %s", decision.Category)
	}
}

func TestClassifyModelTier(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		err        error
		wantCat    entities.IntentCategory
		wantSource entities.ClassificationSource
	}{
		{"valid label", "therapy", nil, entities.CategoryTherapy, entities.SourceModel},
		{"label with whitespace", " Therapy \n", nil, entities.CategoryTherapy, entities.SourceModel},
		{"off-taxonomy label", "smalltalk", nil, entities.CategoryGeneral, entities.SourceDefault},
		{"empty label", "", nil, entities.CategoryGeneral, entities.SourceDefault},
		{"model error", "", errors.New("timeout"), entities.CategoryGeneral, entities.SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewIntentRouter(&stubModel{completeReply: tt.reply, completeErr: tt.err}, zap.NewNop())
			decision := router.Classify(context.Background(), "I feel overwhelmed lately")
			if decision.Category != tt.wantCat {
				t.Errorf("Category = %s, want %s", decision.Category, tt.wantCat)
			}
			if decision.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", decision.Source, tt.wantSource)
			}
		})
	}
}

func TestParseLevelAdjustment(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		text         string
		wantDelta    *int
		wantAbsolute *int
	}{
		{"increase brightness by 20", intPtr(20), nil},
		{"turn it up", intPtr(10), nil},
		{"decrease the volume", intPtr(-10), nil},
		{"bring it down by 30", intPtr(-30), nil},
		{"set brightness to 70", nil, intPtr(70)},
		{"set the volume", nil, intPtr(50)},
		{"brightness please", nil, nil},
		{"increase by 15 then 99", intPtr(15), nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseLevelAdjustment(tt.text)
			if !intPtrEqual(got.Delta, tt.wantDelta) {
				t.Errorf("Delta = %v, want %v", fmtPtr(got.Delta), fmtPtr(tt.wantDelta))
			}
			if !intPtrEqual(got.Absolute, tt.wantAbsolute) {
				t.Errorf("Absolute = %v, want %v", fmtPtr(got.Absolute), fmtPtr(tt.wantAbsolute))
			}
		})
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func TestCleanUtterance(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  spaced   out  ", "spaced out"},
		{"?!...", ""},
		{"Set brightness to 70%.", "set brightness to 70"},
	}
	for _, tt := range tests {
		if got := cleanUtterance(tt.in); got != tt.want {
			t.Errorf("cleanUtterance(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

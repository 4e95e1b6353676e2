package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

// Words that carry no signal about which file the user means.
var retrievalStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "me": true, "please": true,
	"can": true, "you": true, "could": true, "for": true, "up": true,
	"retrieve": true, "open": true, "find": true, "get": true, "pull": true,
	"file": true, "files": true, "document": true, "documents": true, "doc": true,
	"called": true, "named": true,
}

// FileRetrieval finds a file whose name matches the spoken request under the
// configured roots and opens it.
type FileRetrieval struct {
	runner CommandRunner
	roots  []string
	logger *zap.Logger
}

var _ repositories.Handler = (*FileRetrieval)(nil)

// NewFileRetrieval creates the file retrieval handler. Empty roots default
// to the user's home directory.
func NewFileRetrieval(runner CommandRunner, roots []string, logger *zap.Logger) *FileRetrieval {
	if len(roots) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			roots = []string{home}
		}
	}
	return &FileRetrieval{runner: runner, roots: roots, logger: logger}
}

func (h *FileRetrieval) Category() entities.IntentCategory { return entities.CategoryFileRetrieval }

func (h *FileRetrieval) Handle(ctx context.Context, utterance string) (*string, error) {
	terms := SearchTerms(utterance)
	if len(terms) == 0 {
		response := "Tell me the name of the file you're after."
		return &response, nil
	}

	match := h.search(ctx, terms)
	if match == "" {
		response := fmt.Sprintf("I couldn't find a file matching %s.", strings.Join(terms, " "))
		return &response, nil
	}

	if err := openPath(ctx, h.runner, match); err != nil {
		h.logger.Warn("Could not open file", zap.String("path", match), zap.Error(err))
		response := fmt.Sprintf("I found %s but couldn't open it.", filepath.Base(match))
		return &response, nil
	}

	response := fmt.Sprintf("Opening %s for you.", filepath.Base(match))
	return &response, nil
}

// search walks the roots and returns the path whose base name matches the
// most terms. Hidden directories are skipped.
func (h *FileRetrieval) search(ctx context.Context, terms []string) string {
	bestPath := ""
	bestScore := 0

	for _, root := range h.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			name := d.Name()
			if d.IsDir() {
				if strings.HasPrefix(name, ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			score := matchScore(name, terms)
			if score > bestScore {
				bestScore = score
				bestPath = path
			}
			return nil
		})
	}
	return bestPath
}

// SearchTerms reduces the utterance to the words likely to appear in the
// target filename.
func SearchTerms(utterance string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(utterance)) {
		word = strings.Trim(word, ".,!?\"'")
		if word == "" || retrievalStopwords[word] {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

func matchScore(filename string, terms []string) int {
	lowered := strings.ToLower(filename)
	score := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			score++
		}
	}
	return score
}

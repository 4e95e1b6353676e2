package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const (
	defaultNewsBaseURL = "https://newsapi.org/v2"
	newsPageSize       = 3
)

const newsSummaryPrompt = `Summarize these headlines for a voice assistant in two or three short spoken sentences. No markdown.

%s`

// Article is one NewsAPI result.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type newsResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

// News fetches top headlines from NewsAPI and has the language model
// compress them into something speakable.
type News struct {
	apiKey     string
	baseURL    string
	model      repositories.LanguageModel
	httpClient *http.Client
	logger     *zap.Logger
}

var _ repositories.Handler = (*News)(nil)

// NewNews creates the news handler. baseURL is overridable for tests; empty
// means the public NewsAPI endpoint.
func NewNews(apiKey, baseURL string, model repositories.LanguageModel, logger *zap.Logger) *News {
	if baseURL == "" {
		baseURL = defaultNewsBaseURL
	}
	return &News{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (h *News) Category() entities.IntentCategory { return entities.CategoryNews }

func (h *News) Handle(ctx context.Context, utterance string) (*string, error) {
	articles, err := h.fetchHeadlines(ctx)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		response := "I couldn't find any headlines right now."
		return &response, nil
	}

	summary, err := h.model.Complete(ctx, fmt.Sprintf(newsSummaryPrompt, formatArticles(articles)))
	if err != nil {
		h.logger.Warn("Headline summarization failed, reading titles", zap.Error(err))
		summary = "Here are the top headlines. " + joinTitles(articles)
	}
	return &summary, nil
}

func (h *News) fetchHeadlines(ctx context.Context) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/top-headlines?%s", h.baseURL, url.Values{
		"language": {"en"},
		"pageSize": {fmt.Sprint(newsPageSize)},
		"apiKey":   {h.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("news: create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news: fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news: read response: %w", err)
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("news: decode response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("news: api returned status %q: %s", parsed.Status, parsed.Message)
	}
	return parsed.Articles, nil
}

// formatArticles builds the summarization context: one line per article with
// source, title and description.
func formatArticles(articles []Article) string {
	var sb strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&sb, "%d. [%s] %s", i+1, a.Source.Name, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&sb, ": %s", a.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func joinTitles(articles []Article) string {
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.Title)
	}
	return strings.Join(titles, ". ")
}

package evidence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"sentra/internal/config"
	"sentra/internal/models"
)

// adverseTerms filters news coverage down to the articles worth keeping
// as evidence. Neutral press about an entity carries no risk signal.
var adverseTerms = []string{
	"fraud",
	"launder",
	"sanction",
	"investigat",
	"corrupt",
	"briber",
	"embezzle",
	"scandal",
	"indict",
	"terror",
	"smuggl",
	"shell compan",
}

func newHTTPClient(cfg config.SourceConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(1)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return client
}

// --- corporate registry ---

type registrySource struct {
	client *resty.Client
}

func newRegistrySource(cfg config.SourceConfig) *registrySource {
	return &registrySource{client: newHTTPClient(cfg)}
}

func (s *registrySource) Name() models.EvidenceSource {
	return models.SourceRegistry
}

type registryRecord struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Jurisdiction string `json:"jurisdiction"`
	Incorporated string `json:"incorporation_date"`
}

type registryResponse struct {
	Results []registryRecord `json:"results"`
}

func (s *registrySource) Lookup(ctx context.Context, entity *models.Entity) ([]Item, error) {
	var body registryResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", entity.Name).
		SetResult(&body).
		Get("/companies/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: registry returned %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var items []Item
	for _, rec := range body.Results {
		content := fmt.Sprintf("Registry record: %s, status %s", rec.Name, rec.Status)
		if rec.Jurisdiction != "" {
			content += ", jurisdiction " + rec.Jurisdiction
		}
		if rec.Incorporated != "" {
			content += ", incorporated " + rec.Incorporated
		}
		items = append(items, Item{
			Source:     models.SourceRegistry,
			Content:    content,
			Confidence: RegistryConfidence,
		})
	}
	return items, nil
}

// --- adverse media ---

type newsSource struct {
	client *resty.Client
}

func newNewsSource(cfg config.SourceConfig) *newsSource {
	return &newsSource{client: newHTTPClient(cfg)}
}

func (s *newsSource) Name() models.EvidenceSource {
	return models.SourceNews
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type newsResponse struct {
	Articles []newsArticle `json:"articles"`
}

func (s *newsSource) Lookup(ctx context.Context, entity *models.Entity) ([]Item, error) {
	var body newsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", entity.Name).
		SetResult(&body).
		Get("/everything")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: news returned %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var items []Item
	for _, article := range body.Articles {
		text := article.Title
		if article.Description != "" {
			text += ". " + article.Description
		}
		if !isAdverse(text) {
			continue
		}
		items = append(items, Item{
			Source:     models.SourceNews,
			Content:    text,
			Confidence: NewsConfidence,
		})
	}
	return items, nil
}

func isAdverse(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range adverseTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// --- sanctions lists ---

type sanctionsSource struct {
	client *resty.Client
}

func newSanctionsSource(cfg config.SourceConfig) *sanctionsSource {
	return &sanctionsSource{client: newHTTPClient(cfg)}
}

func (s *sanctionsSource) Name() models.EvidenceSource {
	return models.SourceSanctions
}

type sanctionsMatch struct {
	Name  string  `json:"name"`
	List  string  `json:"list"`
	Score float64 `json:"score"`
}

type sanctionsResponse struct {
	Matches []sanctionsMatch `json:"matches"`
}

func (s *sanctionsSource) Lookup(ctx context.Context, entity *models.Entity) ([]Item, error) {
	var body sanctionsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("name", entity.Name).
		SetResult(&body).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: sanctions returned %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var items []Item
	for _, m := range body.Matches {
		conf := SanctionsConfidence
		if m.Score >= 0.99 {
			conf = 1.0
		}
		items = append(items, Item{
			Source:     models.SourceSanctions,
			Content:    fmt.Sprintf("Sanctions match: %s on list %s (match score %.2f)", m.Name, m.List, m.Score),
			Confidence: conf,
		})
	}
	return items, nil
}

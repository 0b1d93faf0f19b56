package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/config"
	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/pkg/log"

	"github.com/go-resty/resty/v2"
)

const googleSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// User-facing Turkish messages for the web-search error taxonomy.
const (
	webSearchNoResults = "<p>Üzgünüm, aramanızla ilgili bir sonuç bulamadım. Lütfen farklı kelimelerle tekrar deneyin.</p>"
	webSearchTimeout   = "<p>Web araması zaman aşımına uğradı. Lütfen biraz sonra tekrar deneyin.</p>"
	webSearchRateLimit = "<p>Arama servisi şu anda çok yoğun. Lütfen birkaç dakika sonra tekrar deneyin.</p>"
	webSearchAuthError = "<p>Web araması şu anda kullanılamıyor. Lütfen daha sonra tekrar deneyin.</p>"
	webSearchGeneric   = "<p>Web araması sırasında bir sorun oluştu. Lütfen tekrar deneyin.</p>"
)

// googleSearchResponse is the slice of the CSE payload we consume
type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// WebSearcher answers a query from live web results: Google Programmable
// Search for the top hits, then a persona-flavored summarization.
type WebSearcher struct {
	http        *resty.Client
	chat        ChatClient
	cfg         config.GoogleConfig
	chatModel   string
	chatTimeout time.Duration
}

// NewWebSearcher creates a new web-search answerer
func NewWebSearcher(chat ChatClient, googleCfg config.GoogleConfig, chatModel string, searchTimeout, chatTimeout time.Duration) *WebSearcher {
	client := resty.New().
		SetTimeout(searchTimeout).
		SetRetryCount(0)
	return &WebSearcher{
		http:        client,
		chat:        chat,
		cfg:         googleCfg,
		chatModel:   chatModel,
		chatTimeout: chatTimeout,
	}
}

// Answer runs the sibling pipeline: search, format the hits, summarize under
// the persona's search prompt. Every failure maps to a localized string; the
// method never returns an error.
func (w *WebSearcher) Answer(ctx context.Context, query string, persona model.Persona) string {
	results, err := w.search(ctx, query)
	if err != nil {
		log.Error("web search failed", err)
		return classifySearchError(err)
	}
	if results == "" {
		return webSearchNoResults
	}

	chatCtx, cancel := context.WithTimeout(ctx, w.chatTimeout)
	defer cancel()

	resp, err := w.chat.ChatCompletion(chatCtx, ChatCompletionRequest{
		Model: w.chatModel,
		Messages: []ChatMessage{
			{Role: model.RoleSystem, Content: WebSearchPrompts[persona]},
			{Role: model.RoleUser, Content: fmt.Sprintf("SORU: %s\n\nARAMA SONUÇLARI:\n%s", query, results)},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		log.Error("web search summarization failed", err)
		return classifySearchError(err)
	}
	if resp.FirstContent() == "" {
		return webSearchGeneric
	}
	return resp.FirstContent()
}

// search queries Google CSE and renders the top 3 hits as an HTML list.
// Empty string means no results.
func (w *WebSearcher) search(ctx context.Context, query string) (string, error) {
	var payload googleSearchResponse
	resp, err := w.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": w.cfg.APIKey,
			"cx":  w.cfg.CSEID,
			"q":   query,
			"num": "3",
		}).
		SetResult(&payload).
		Get(googleSearchEndpoint)
	if err != nil {
		return "", fmt.Errorf("google search request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("google search returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(payload.Items) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("<ul>\n")
	for i, item := range payload.Items {
		if i >= 3 {
			break
		}
		b.WriteString(fmt.Sprintf("<li><a href=\"%s\">%s</a><br>%s</li>\n", item.Link, item.Title, item.Snippet))
	}
	b.WriteString("</ul>")
	return b.String(), nil
}

// classifySearchError maps an upstream failure onto the four user-facing
// message kinds: timeout, rate-limit, auth, other.
func classifySearchError(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return webSearchTimeout
	case strings.Contains(msg, "status 429") || strings.Contains(msg, "rateLimitExceeded") || strings.Contains(msg, "quota"):
		return webSearchRateLimit
	case strings.Contains(msg, "status 401") || strings.Contains(msg, "status 403"):
		return webSearchAuthError
	default:
		return webSearchGeneric
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/internal/utils"
	"github.com/akinmix/sibelgpt-backend/pkg/log"
)

const listingIntentPrompt = `Kullanıcının sorusunu değerlendir: somut emlak ilanları mı arıyor, yoksa genel bir bilgi/kavram sorusu mu soruyor?

İlan arıyorsa (ör. "Kadıköy'de 3+1 satılık daire", "deniz manzaralı kiralık") SADECE "evet" yaz.
Genel bilgi istiyorsa (ör. "tapu harcı nedir", "ev alırken nelere dikkat etmeliyim") SADECE "hayır" yaz.

Tek kelime cevap ver.`

// Search-intent verbs and real-estate nouns for the keyword fallback. Both
// lists must hit for the heuristic to say yes.
var (
	searchIntentVerbs = []string{
		"arıyorum", "ariyorum", "bul", "göster", "goster", "bakıyorum",
		"bakiyorum", "var mı", "var mi", "satılık", "satilik", "kiralık",
		"kiralik", "istiyorum", "lazım", "lazim",
	}
	listingNouns = []string{
		"daire", "ev", "konut", "villa", "arsa", "ofis", "dükkan", "dukkan",
		"ilan", "stüdyo", "studyo", "rezidans", "müstakil", "mustakil",
	}
)

// IntentClassifier decides whether a question needs concrete listing
// retrieval. LLM first, keyword heuristic when the LLM is unreachable.
type IntentClassifier struct {
	chat    ChatClient
	model   string
	timeout time.Duration
}

// NewIntentClassifier creates a new listing-intent classifier
func NewIntentClassifier(chat ChatClient, chatModel string, timeout time.Duration) *IntentClassifier {
	return &IntentClassifier{chat: chat, model: chatModel, timeout: timeout}
}

// NeedsListings reports whether question asks for concrete listings.
func (c *IntentClassifier) NeedsListings(ctx context.Context, question string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chat.ChatCompletion(ctx, ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: model.RoleSystem, Content: listingIntentPrompt},
			{Role: model.RoleUser, Content: question},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil {
		log.Error("listing-intent LLM call failed, falling back to keywords", err)
		return keywordListingIntent(question)
	}

	answer := utils.CleanLLMToken(resp.FirstContent())
	return answer == "evet" || answer == "yes"
}

// keywordListingIntent is the fail-open heuristic: a search verb together
// with a real-estate noun reads as a listing request.
func keywordListingIntent(question string) bool {
	cleaned := normalizeQuestion(question)

	hasVerb := false
	for _, v := range searchIntentVerbs {
		if strings.Contains(cleaned, v) {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		return false
	}
	for _, n := range listingNouns {
		if strings.Contains(cleaned, n) {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/internal/utils"
	"github.com/akinmix/sibelgpt-backend/pkg/log"
)

// GreetingVocabulary is the fixed set of greeting substrings that trigger the
// short-circuit paths. Substring matching rules out short tokens like "hi"
// that hide inside Turkish words ("hangisi").
var GreetingVocabulary = []string{
	"merhaba", "selam", "günaydın", "gunaydin", "iyi akşamlar", "iyi aksamlar",
	"iyi günler", "iyi gunler", "nasılsın", "nasilsin", "hello",
}

// Persona keyword lists. Tallies over these decide routing before any LLM
// call. Note: "gayrimenkul" also appears in the mind-coach list; upstream
// ships it that way and borderline classifications depend on it, so it stays.
var personaKeywords = map[model.Persona][]string{
	model.PersonaRealEstate: {
		"emlak", "gayrimenkul", "daire", "konut", "satılık", "satilik",
		"kiralık", "kiralik", "ev", "villa", "arsa", "tapu", "m2", "metrekare",
		"oda", "bina", "kat", "site", "müstakil", "mustakil", "ilan",
		"mahalle", "imar", "kira", "depozito", "aidat", "eşyalı", "esyali",
	},
	model.PersonaMindCoach: {
		"motivasyon", "stres", "kaygı", "kaygi", "meditasyon", "farkındalık",
		"farkindalik", "özgüven", "ozguven", "ilişki", "iliski", "mutluluk",
		"hedef", "alışkanlık", "aliskanlik", "uyku", "odaklanma", "terapi",
		"duygu", "gayrimenkul", "koçluk", "kocluk", "gelişim", "gelisim",
	},
	model.PersonaFinance: {
		"borsa", "hisse", "dolar", "euro", "altın", "altin", "faiz",
		"enflasyon", "kripto", "bitcoin", "ethereum", "yatırım", "yatirim",
		"fon", "tahvil", "döviz", "doviz", "bist", "temettü", "temettu",
		"portföy", "portfoy", "coin",
	},
}

const topicClassifierPrompt = `Kullanıcının sorusunu aşağıdaki dört kategoriden birine ata ve SADECE kategori adını yaz:
- real-estate: emlak, konut, satılık/kiralık ilanlar, gayrimenkul yatırımı
- mind-coach: kişisel gelişim, motivasyon, stres, ilişkiler, farkındalık
- finance: borsa, döviz, altın, kripto, ekonomi, yatırım araçları
- general: hiçbirine girmeyen sorular

Tek kelime cevap ver.`

// topicDecision is the outcome of one classifier stage. Abstain means the
// stage saw no signal (stay in the current persona); Classified carries
// either a persona or the general bucket.
type topicDecision struct {
	topic model.Topic
	kind  decisionKind
}

type decisionKind int

const (
	decisionClassified decisionKind = iota
	decisionAbstain
	decisionError
)

// TopicClassifier decides which persona a question belongs to. Keyword
// tallies run first; a small LLM call breaks ties; every failure falls open
// to the caller's current persona.
type TopicClassifier struct {
	chat    ChatClient
	model   string
	timeout time.Duration
}

// NewTopicClassifier creates a new topic classifier
func NewTopicClassifier(chat ChatClient, chatModel string, timeout time.Duration) *TopicClassifier {
	return &TopicClassifier{chat: chat, model: chatModel, timeout: timeout}
}

// DetectTopic classifies question relative to the active persona. It returns
// a persona topic, or TopicGeneral when the LLM places the question outside
// all three domains; the orchestrator maps TopicGeneral to the out-of-scope
// reply. Abstain and Error both fall open to the current persona.
func (t *TopicClassifier) DetectTopic(ctx context.Context, question string, current model.Persona) model.Topic {
	cleaned := normalizeQuestion(question)
	tokens := strings.Fields(cleaned)

	// Short greetings never leave the active persona.
	if len(tokens) <= 3 && containsGreeting(cleaned) {
		return current.Topic()
	}

	tally, best := tallyKeywords(cleaned)

	// Low signal on a short message is chit-chat; stay put without an LLM call.
	if tally[best] <= 1 && len(tokens) <= 5 {
		return current.Topic()
	}

	var decision topicDecision
	if tally[best] <= 1 {
		decision = t.classifyWithLLM(ctx, question)
	} else {
		decision = topicDecision{topic: best.Topic(), kind: decisionClassified}
	}

	if decision.kind != decisionClassified {
		return current.Topic()
	}
	return decision.topic
}

// classifyWithLLM is the tie-breaking stage: small model, near-deterministic,
// hard-capped output.
func (t *TopicClassifier) classifyWithLLM(ctx context.Context, question string) topicDecision {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.chat.ChatCompletion(ctx, ChatCompletionRequest{
		Model: t.model,
		Messages: []ChatMessage{
			{Role: model.RoleSystem, Content: topicClassifierPrompt},
			{Role: model.RoleUser, Content: question},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil {
		log.Error("topic classifier LLM call failed", err)
		return topicDecision{kind: decisionError}
	}

	answer := utils.CleanLLMToken(resp.FirstContent())
	if answer == string(model.TopicGeneral) {
		return topicDecision{topic: model.TopicGeneral, kind: decisionClassified}
	}
	if p, err := model.ParsePersona(answer); err == nil {
		return topicDecision{topic: p.Topic(), kind: decisionClassified}
	}
	return topicDecision{kind: decisionAbstain}
}

// normalizeQuestion lowercases the question and replaces punctuation with
// spaces so keyword matching sees bare tokens.
func normalizeQuestion(question string) string {
	lowered := strings.ToLower(question)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch r {
		case '.', ',', '!', '?', ';', ':', '\'', '"', '(', ')', '-', '/':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func containsGreeting(cleaned string) bool {
	for _, g := range GreetingVocabulary {
		if strings.Contains(cleaned, g) {
			return true
		}
	}
	return false
}

// tallyKeywords counts keyword hits per persona and returns the winner.
// Ties resolve by the fixed iteration order of model.Personas.
func tallyKeywords(cleaned string) (map[model.Persona]int, model.Persona) {
	tally := make(map[model.Persona]int, len(model.Personas))
	for _, p := range model.Personas {
		for _, kw := range personaKeywords[p] {
			if strings.Contains(cleaned, kw) {
				tally[p]++
			}
		}
	}

	best := model.Personas[0]
	for _, p := range model.Personas[1:] {
		if tally[p] > tally[best] {
			best = p
		}
	}
	return tally, best
}

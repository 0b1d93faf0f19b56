package service

import (
	"context"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/pkg/log"
)

const chatApology = "<p>Üzgünüm, şu anda yanıt oluşturamıyorum. Lütfen biraz sonra tekrar deneyin.</p>"

const chatMaxTokens = 4096

// Grounded listing output needs format consistency; everything else
// breathes a little more.
const (
	groundedTemperature = 0.3
	defaultTemperature  = 0.6
)

// topicDetector and listingIntentDetector are the classifier seams the
// orchestrator depends on; the concrete classifiers satisfy them and tests
// substitute canned ones.
type topicDetector interface {
	DetectTopic(ctx context.Context, question string, current model.Persona) model.Topic
}

type listingIntentDetector interface {
	NeedsListings(ctx context.Context, question string) bool
}

type propertySearcher interface {
	SearchProperties(ctx context.Context, question string) string
}

// Orchestrator glues the pipeline: greeting shortcut, topic routing, optional
// retrieval, prompt assembly, model selection and the final completion.
type Orchestrator struct {
	topics      topicDetector
	intent      listingIntentDetector
	retriever   propertySearcher
	chat        ChatClient
	strongModel string
	lightModel  string
	chatTimeout time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	topics topicDetector,
	intent listingIntentDetector,
	retriever propertySearcher,
	chat ChatClient,
	strongModel, lightModel string,
	chatTimeout time.Duration,
) *Orchestrator {
	return &Orchestrator{
		topics:      topics,
		intent:      intent,
		retriever:   retriever,
		chat:        chat,
		strongModel: strongModel,
		lightModel:  lightModel,
		chatTimeout: chatTimeout,
	}
}

// Answer runs the single-pass state machine for one question. It always
// returns user-facing HTML; errors never escape this boundary.
func (o *Orchestrator) Answer(ctx context.Context, question string, persona model.Persona, history []model.Message) string {
	// 1. Greeting short-circuit: no classifier, no LLM, no retrieval.
	if containsGreeting(strings.ToLower(question)) {
		return GreetingReplies[persona]
	}

	// 2-3. Topic classification and routing. A different persona means a
	// redirection invite; the general bucket means out-of-scope.
	detected := o.topics.DetectTopic(ctx, question, persona)
	if detected != persona.Topic() {
		if target, err := model.ParsePersona(string(detected)); err == nil {
			if reply, ok := RedirectionFor(persona, target); ok {
				return reply
			}
		}
		return OutOfScopeReplies[persona]
	}

	// 4. Context assembly: only the real-estate persona retrieves listings,
	// and only when the question actually asks for them.
	listingContext := noContextSentinel
	if persona == model.PersonaRealEstate && o.intent.NeedsListings(ctx, question) {
		listingContext = o.retriever.SearchProperties(ctx, question)
	}

	// 5. Message list: system prompt + context, filtered history, question.
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{
		Role:    model.RoleSystem,
		Content: SystemPrompts[persona] + "\n\nİLGİLİ İLANLAR:\n" + listingContext,
	})
	for _, m := range model.FilterHistory(history) {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Text})
	}
	messages = append(messages, ChatMessage{Role: model.RoleUser, Content: question})

	// 6. Model and temperature selection.
	chatModel, temperature := o.selectModel(persona, listingContext)

	// 7. Completion.
	chatCtx, cancel := context.WithTimeout(ctx, o.chatTimeout)
	defer cancel()

	resp, err := o.chat.ChatCompletion(chatCtx, ChatCompletionRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		log.Error("chat completion failed", err)
		return chatApology
	}
	if resp.FirstContent() == "" {
		return chatApology
	}
	return resp.FirstContent()
}

// selectModel picks the tier and temperature for the final completion.
// Real-estate answers grounded on retrieved listings get the stronger model
// at low temperature; ungrounded real-estate chat rides the cheap tier.
func (o *Orchestrator) selectModel(persona model.Persona, listingContext string) (string, float64) {
	if persona == model.PersonaRealEstate {
		if listingContext != noContextSentinel {
			return o.strongModel, groundedTemperature
		}
		return o.lightModel, defaultTemperature
	}
	return o.strongModel, defaultTemperature
}

package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/model"
)

const (
	testStrongModel = "gpt-4o-mini"
	testLightModel  = "gpt-3.5-turbo"
)

func newTestOrchestrator(topics topicDetector, intent listingIntentDetector, searcher propertySearcher, chat ChatClient) *Orchestrator {
	return NewOrchestrator(topics, intent, searcher, chat, testStrongModel, testLightModel, 5*time.Second)
}

func TestAnswer_GreetingShortCircuit(t *testing.T) {
	topics := &fakeTopics{}
	intent := &fakeIntent{}
	searcher := &fakeSearcher{}
	chat := &fakeChat{reply: "never"}
	orch := newTestOrchestrator(topics, intent, searcher, chat)

	got := orch.Answer(context.Background(), "Merhaba", model.PersonaRealEstate, nil)

	if !strings.Contains(got, "Merhaba") || !strings.Contains(got, "gayrimenkul") {
		t.Errorf("greeting reply should mention Merhaba and gayrimenkul, got %q", got)
	}
	if topics.calls != 0 || intent.calls != 0 || searcher.calls != 0 || chat.callCount() != 0 {
		t.Errorf("greeting must make zero upstream calls, got topics=%d intent=%d search=%d chat=%d",
			topics.calls, intent.calls, searcher.calls, chat.callCount())
	}
}

func TestAnswer_RedirectionExactMatch(t *testing.T) {
	topics := &fakeTopics{topic: model.PersonaFinance.Topic()}
	chat := &fakeChat{reply: "never"}
	orch := newTestOrchestrator(topics, &fakeIntent{}, &fakeSearcher{}, chat)

	got := orch.Answer(context.Background(), "Bitcoin fiyatı nedir?", model.PersonaRealEstate, nil)

	want, ok := RedirectionFor(model.PersonaRealEstate, model.PersonaFinance)
	if !ok {
		t.Fatal("registry is missing the real-estate→finance redirection")
	}
	if got != want {
		t.Errorf("redirection reply = %q, want the registry fragment %q", got, want)
	}
	if chat.callCount() != 0 {
		t.Errorf("redirection must not call the chat API, got %d calls", chat.callCount())
	}
}

func TestAnswer_OutOfScope(t *testing.T) {
	topics := &fakeTopics{topic: model.TopicGeneral}
	orch := newTestOrchestrator(topics, &fakeIntent{}, &fakeSearcher{}, &fakeChat{reply: "never"})

	got := orch.Answer(context.Background(), "Hangisi daha iyi: otobüs mü metro mu?", model.PersonaMindCoach, nil)

	if got != OutOfScopeReplies[model.PersonaMindCoach] {
		t.Errorf("out-of-scope reply = %q, want the mind-coach fragment", got)
	}
}

func TestAnswer_ListingFlowUsesStrongModel(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1, 0.2}}
	store := &fakeStore{rows: []model.ListingRow{
		{ListingID: "P1", Title: "Daire", Location: "Kadıköy", Similarity: 0.7},
		{ListingID: "P2", Title: "Daire", Location: "Moda", Similarity: 0.5},
		{ListingID: "P3", Title: "Daire", Location: "Bostancı", Similarity: 0.2},
	}}
	retriever := newTestRetriever(t, embedding, store)
	chat := &fakeChat{reply: "<p>İki ilan buldum.</p>"}
	orch := newTestOrchestrator(&fakeTopics{}, &fakeIntent{needs: true}, retriever, chat)

	got := orch.Answer(context.Background(), "Kadıköy'de 3+1 satılık daire", model.PersonaRealEstate, nil)

	if got != "<p>İki ilan buldum.</p>" {
		t.Errorf("unexpected reply %q", got)
	}
	if chat.lastReq.Model != testStrongModel {
		t.Errorf("model = %q, want %q for grounded listing answers", chat.lastReq.Model, testStrongModel)
	}
	if chat.lastReq.Temperature != groundedTemperature {
		t.Errorf("temperature = %v, want %v", chat.lastReq.Temperature, groundedTemperature)
	}
	if chat.lastReq.MaxTokens != chatMaxTokens {
		t.Errorf("max tokens = %d, want %d", chat.lastReq.MaxTokens, chatMaxTokens)
	}

	system := chat.lastReq.Messages[0].Content
	if !strings.Contains(system, "İLGİLİ İLANLAR:") {
		t.Error("system prompt must carry the retrieval context section")
	}
	if !strings.Contains(system, manifestPrefix+"P1, P2") {
		t.Errorf("context manifest should list exactly P1, P2; system prompt:\n%s", system)
	}
	if strings.Contains(system, "P3") {
		t.Error("row below the similarity threshold leaked into the context")
	}
}

func TestAnswer_NoListingIntentUsesLightModel(t *testing.T) {
	searcher := &fakeSearcher{html: "should not be used"}
	chat := &fakeChat{reply: "<p>Dikkat edilecekler...</p>"}
	orch := newTestOrchestrator(&fakeTopics{}, &fakeIntent{needs: false}, searcher, chat)

	orch.Answer(context.Background(), "Ev alırken nelere dikkat etmeliyim acaba bilmiyorum?", model.PersonaRealEstate, nil)

	if searcher.calls != 0 {
		t.Errorf("retriever called %d times, want 0", searcher.calls)
	}
	if chat.lastReq.Model != testLightModel {
		t.Errorf("model = %q, want %q without retrieval context", chat.lastReq.Model, testLightModel)
	}
	if chat.lastReq.Temperature != defaultTemperature {
		t.Errorf("temperature = %v, want %v", chat.lastReq.Temperature, defaultTemperature)
	}
	if !strings.Contains(chat.lastReq.Messages[0].Content, noContextSentinel) {
		t.Error("system prompt should carry the no-retrieval sentinel")
	}
}

func TestAnswer_OtherPersonaUsesStrongModel(t *testing.T) {
	intent := &fakeIntent{needs: true}
	searcher := &fakeSearcher{html: "should not be used"}
	chat := &fakeChat{reply: "<p>Altın hakkında...</p>"}
	orch := newTestOrchestrator(&fakeTopics{}, intent, searcher, chat)

	orch.Answer(context.Background(), "Altın fiyatları uzun vadede nasıl seyreder?", model.PersonaFinance, nil)

	if intent.calls != 0 || searcher.calls != 0 {
		t.Errorf("non-real-estate personas must not classify intent or retrieve, got intent=%d search=%d",
			intent.calls, searcher.calls)
	}
	if chat.lastReq.Model != testStrongModel || chat.lastReq.Temperature != defaultTemperature {
		t.Errorf("model/temp = (%q, %v), want (%q, %v)",
			chat.lastReq.Model, chat.lastReq.Temperature, testStrongModel, defaultTemperature)
	}
}

func TestAnswer_HistoryFiltering(t *testing.T) {
	chat := &fakeChat{reply: "<p>ok</p>"}
	orch := newTestOrchestrator(&fakeTopics{}, &fakeIntent{}, &fakeSearcher{}, chat)

	history := []model.Message{
		{Role: model.RoleUser, Text: "önceki soru"},
		{Role: "", Text: "rolü eksik"},
		{Role: model.RoleAssistant, Text: ""},
		{Role: model.RoleAssistant, Text: "önceki cevap"},
	}
	orch.Answer(context.Background(), "Portföy çeşitlendirmesi mantıklı mı sence?", model.PersonaFinance, history)

	// system + 2 surviving history turns + user question
	if len(chat.lastReq.Messages) != 4 {
		t.Fatalf("message list has %d entries, want 4", len(chat.lastReq.Messages))
	}
	if chat.lastReq.Messages[1].Content != "önceki soru" || chat.lastReq.Messages[2].Content != "önceki cevap" {
		t.Error("history filtering dropped or reordered valid turns")
	}
	last := chat.lastReq.Messages[len(chat.lastReq.Messages)-1]
	if last.Role != model.RoleUser {
		t.Errorf("final message role = %q, want user", last.Role)
	}
}

func TestAnswer_CompletionFailureYieldsApology(t *testing.T) {
	chat := &fakeChat{err: errUpstream}
	orch := newTestOrchestrator(&fakeTopics{}, &fakeIntent{}, &fakeSearcher{}, chat)

	got := orch.Answer(context.Background(), "Faiz kararı piyasayı nasıl etkiler sizce?", model.PersonaFinance, nil)
	if got != chatApology {
		t.Errorf("failure reply = %q, want the apology string", got)
	}
}

func TestAnswer_ConcurrentSameQuestionSingleRetrieval(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1}}
	store := &fakeStore{rows: []model.ListingRow{{ListingID: "P1", Title: "Daire", Similarity: 0.6}}}
	retriever := newTestRetriever(t, embedding, store)
	chat := &fakeChat{reply: "<p>cevap</p>"}
	orch := newTestOrchestrator(&fakeTopics{}, &fakeIntent{needs: true}, retriever, chat)

	const workers = 2
	replies := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			replies[i] = orch.Answer(context.Background(), "Kadıköy daire", model.PersonaRealEstate, nil)
		}(i)
	}
	wg.Wait()

	if embedding.callCount() != 1 || store.callCount() != 1 {
		t.Errorf("concurrent identical questions should retrieve once, got embed=%d store=%d",
			embedding.callCount(), store.callCount())
	}
	if replies[0] != replies[1] {
		t.Error("concurrent callers received different replies")
	}
}

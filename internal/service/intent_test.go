package service

import (
	"context"
	"testing"
	"time"
)

func newIntentClassifier(chat ChatClient) *IntentClassifier {
	return NewIntentClassifier(chat, "test-model", 5*time.Second)
}

func TestNeedsListings_LLMAnswer(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"evet", "evet", true},
		{"evet with punctuation", "Evet.", true},
		{"hayır", "hayır", false},
		{"yes alias", "yes", true},
		{"unexpected answer", "belki", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{reply: tt.reply}
			classifier := newIntentClassifier(chat)

			got := classifier.NeedsListings(context.Background(), "Kadıköy'de 3+1 satılık daire")
			if got != tt.want {
				t.Errorf("NeedsListings = %v, want %v", got, tt.want)
			}
			if chat.lastReq.Temperature != 0.1 || chat.lastReq.MaxTokens != 10 {
				t.Errorf("intent call params = (%v, %v), want (0.1, 10)",
					chat.lastReq.Temperature, chat.lastReq.MaxTokens)
			}
		})
	}
}

func TestNeedsListings_KeywordFallback(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"search verb plus listing noun", "Kadıköy'de satılık daire arıyorum", true},
		{"rental phrasing", "Moda'da kiralık ev var mı?", true},
		{"concept question", "Tapu harcı nedir, nasıl hesaplanır?", false},
		{"noun without search verb", "Dairemin değeri son yılda nasıl değişti?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{err: errUpstream}
			classifier := newIntentClassifier(chat)

			got := classifier.NeedsListings(context.Background(), tt.question)
			if got != tt.want {
				t.Errorf("NeedsListings(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

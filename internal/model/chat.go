package model

// ChatRequest represents the POST /chat body
type ChatRequest struct {
	Question            string    `json:"question"`
	Mode                string    `json:"mode" binding:"required"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// ChatResponse represents the reply envelope for /chat and /web-search
type ChatResponse struct {
	Reply string `json:"reply"`
}

// WebSearchRequest represents the POST /web-search body
type WebSearchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode" binding:"required"`
}

// ErrorResponse represents an error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

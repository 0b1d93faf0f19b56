package model

// Message roles accepted in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of the conversation as supplied by the caller.
// History is passed per request and never persisted.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// FilterHistory drops history entries missing either field. The orchestrator
// forwards only well-formed turns to the completion call.
func FilterHistory(history []Message) []Message {
	filtered := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role == "" || m.Text == "" {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

package domain

// AdviceTopic selects the system prompt used for an advisor exchange.
type AdviceTopic string

const (
	TopicCybersecurity AdviceTopic = "cybersecurity"
	TopicDataScience   AdviceTopic = "data_science"
	TopicITOperations  AdviceTopic = "it_operations"
	TopicGeneral       AdviceTopic = "general"
)

// Valid reports whether t is one of the known advice topics.
func (t AdviceTopic) Valid() bool {
	switch t {
	case TopicCybersecurity, TopicDataScience, TopicITOperations, TopicGeneral:
		return true
	}
	return false
}

// ChatMessage is a single turn in an advisor conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

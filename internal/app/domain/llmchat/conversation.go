package llmchat

import (
	"context"
	"fmt"
	"sync"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

// FallbackReply is appended in place of an answer when the model call fails.
const FallbackReply = "Sorry, I had trouble connecting. Please try again!"

// Greeting is the assistant message a conversation opens with.
func Greeting(destination, country string) string {
	return fmt.Sprintf("Hi! I'm WanderAI 🌍 Ask me anything about **%s**: the best places to visit, local food, hidden gems, travel tips, or anything else!",
		placeLabel(destination, country))
}

// Chatter answers the last message of a chat log.
type Chatter interface {
	Chat(ctx context.Context, messages []models.ChatMessage, destination, country string) (string, error)
}

// Conversation is an append-only chat log about one destination.
type Conversation struct {
	Destination string
	Country     string

	mu       sync.Mutex
	messages []models.ChatMessage
}

func NewConversation(destination, country string) *Conversation {
	return &Conversation{
		Destination: destination,
		Country:     country,
		messages: []models.ChatMessage{
			{Role: models.RoleAssistant, Content: Greeting(destination, country)},
		},
	}
}

// ResumeConversation continues a log kept by the client. An empty log starts
// over with the greeting.
func ResumeConversation(destination, country string, messages []models.ChatMessage) *Conversation {
	if len(messages) == 0 {
		return NewConversation(destination, country)
	}
	c := &Conversation{Destination: destination, Country: country}
	c.messages = append(c.messages, messages...)
	return c
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send appends the user's message and then the assistant's reply, or
// FallbackReply when chatting fails. The error of a failed call is returned
// alongside the fallback so callers can log it.
func (c *Conversation) Send(ctx context.Context, svc Chatter, text string) (string, error) {
	c.mu.Lock()
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	snapshot := make([]models.ChatMessage, len(c.messages))
	copy(snapshot, c.messages)
	c.mu.Unlock()

	reply, err := svc.Chat(ctx, snapshot, c.Destination, c.Country)
	if err != nil {
		reply = FallbackReply
	}

	c.mu.Lock()
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	c.mu.Unlock()
	return reply, err
}

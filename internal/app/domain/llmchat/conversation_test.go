package llmchat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

func TestNewConversation_StartsWithGreeting(t *testing.T) {
	conv := NewConversation("Lisbon", "Portugal")

	msgs := conv.Messages()

	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "**Lisbon, Portugal**")
}

func TestConversation_Send(t *testing.T) {
	gen := new(MockGenerator)
	// The greeting is not sent as history.
	gen.On("Chat", mock.Anything, []models.ChatMessage{}, "Is it sunny?", mock.Anything).
		Return("Usually, yes!", nil).Once()
	svc := NewService(gen, zap.NewNop())
	conv := NewConversation("Lisbon", "Portugal")

	reply, err := conv.Send(context.Background(), svc, "Is it sunny?")

	require.NoError(t, err)
	assert.Equal(t, "Usually, yes!", reply)
	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.ChatMessage{Role: models.RoleUser, Content: "Is it sunny?"}, msgs[1])
	assert.Equal(t, models.ChatMessage{Role: models.RoleAssistant, Content: "Usually, yes!"}, msgs[2])
	gen.AssertExpectations(t)
}

func TestConversation_SendFallsBack(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Chat", mock.Anything, mock.Anything, "Hello?", mock.Anything).
		Return("", errors.New("network down")).Once()
	svc := NewService(gen, zap.NewNop())
	conv := NewConversation("Oslo", "")

	reply, err := conv.Send(context.Background(), svc, "Hello?")

	assert.ErrorIs(t, err, models.ErrProvider)
	assert.Equal(t, FallbackReply, reply)
	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, FallbackReply, msgs[2].Content)
	assert.Equal(t, models.RoleAssistant, msgs[2].Role)
}

func TestResumeConversation(t *testing.T) {
	prior := []models.ChatMessage{
		{Role: models.RoleAssistant, Content: "hi"},
		{Role: models.RoleUser, Content: "q"},
		{Role: models.RoleAssistant, Content: "a"},
	}
	conv := ResumeConversation("Oslo", "Norway", prior)
	assert.Equal(t, prior, conv.Messages())

	fresh := ResumeConversation("Oslo", "Norway", nil)
	require.Len(t, fresh.Messages(), 1)
	assert.Equal(t, Greeting("Oslo", "Norway"), fresh.Messages()[0].Content)
}

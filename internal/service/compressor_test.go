package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parley/backend/internal/llm"
	"parley/backend/internal/llm/mocks"
	"parley/backend/internal/model"
	"parley/backend/internal/service"
	"parley/backend/internal/tokenizer"
)

func conversation() []model.ChatMessage {
	return []model.ChatMessage{
		msg("u1", model.RoleUser, "What is pho?", 1),
		msg("a1", model.RoleAssistant, "Pho is a Vietnamese soup.", 2),
		msg("u2", model.RoleUser, "Where does it come from?", 3),
		msg("a2", model.RoleAssistant, "Northern Vietnam, around Nam Dinh.", 4),
		msg("u3", model.RoleUser, "And bun cha?", 5),
	}
}

func isSummaryRequest(req *llm.CompletionRequest) bool {
	last := req.Messages[len(req.Messages)-1]
	return last.Role == "user" && strings.Contains(last.Content, "200 words")
}

func TestContextCompressor_Compress(t *testing.T) {
	ctx := context.Background()

	t.Run("Over threshold triggers exactly one summary", func(t *testing.T) {
		chats, cfg := newStores(t)
		cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(2000)})
		id := seedSession(t, chats, conversation()...)

		completer := mocks.NewMockCompleter(t)
		completer.On("Complete", ctx, mock.MatchedBy(isSummaryRequest)).
			Return("The user asked about pho and its origin.", nil).Once()

		c := service.NewContextCompressor(chats, cfg, completer, fixedEstimator(2500))
		did, err := c.Compress(ctx, id)
		require.NoError(t, err)
		assert.True(t, did)

		got, _ := chats.GetSession(id)
		assert.Equal(t, "The user asked about pho and its origin.", got.ContextSummary)
		assert.Equal(t, []string{"u1", "a1", "u2"}, got.Settings.SummarizedIDs, "the two newest messages stay raw")
		assert.Equal(t, []string{"u1", "a1", "u2"}, got.ContextSummaryAppliesTo)
		assert.Len(t, got.Messages, 5, "compression never drops messages")
	})

	t.Run("Below threshold is a no-op", func(t *testing.T) {
		chats, cfg := newStores(t)
		id := seedSession(t, chats, conversation()...)

		c := service.NewContextCompressor(chats, cfg, mocks.NewMockCompleter(t), tokenizer.Heuristic{})
		did, err := c.Compress(ctx, id)
		require.NoError(t, err)
		assert.False(t, did)
	})

	t.Run("Prior summary leads and summarized messages are skipped", func(t *testing.T) {
		chats, cfg := newStores(t)
		cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(10)})
		id := seedSession(t, chats, conversation()...)
		chats.UpdateSummary(id, "Earlier: greetings.", []string{"u1", "a1"})

		var sent *llm.CompletionRequest
		completer := mocks.NewMockCompleter(t)
		completer.On("Complete", ctx, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*llm.CompletionRequest) }).
			Return("Pho and bun cha.", nil).Once()

		c := service.NewContextCompressor(chats, cfg, completer, fixedEstimator(50))
		_, err := c.Compress(ctx, id)
		require.NoError(t, err)

		require.NotNil(t, sent)
		require.Len(t, sent.Messages, 5)
		assert.Equal(t, llm.Message{Role: "assistant", Content: "Earlier: greetings."}, sent.Messages[0])
		assert.Equal(t, "Where does it come from?", sent.Messages[1].Content)
		assert.True(t, isSummaryRequest(sent))

		got, _ := chats.GetSession(id)
		assert.Equal(t, []string{"u1", "a1", "u2"}, got.Settings.SummarizedIDs, "ids only ever grow")
	})

	t.Run("Failed or empty completion leaves state unchanged", func(t *testing.T) {
		for name, ret := range map[string][]any{
			"error": {"", errors.New("upstream down")},
			"empty": {"   ", nil},
		} {
			t.Run(name, func(t *testing.T) {
				chats, cfg := newStores(t)
				cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(10)})
				id := seedSession(t, chats, conversation()...)
				before, _ := chats.GetSession(id)

				completer := mocks.NewMockCompleter(t)
				completer.On("Complete", ctx, mock.Anything).Return(ret...).Once()

				c := service.NewContextCompressor(chats, cfg, completer, fixedEstimator(50))
				did, _ := c.Compress(ctx, id)
				assert.False(t, did)

				after, _ := chats.GetSession(id)
				assert.Equal(t, before, after)
			})
		}
	})

	t.Run("Only the kept tail pending skips the summary", func(t *testing.T) {
		chats, cfg := newStores(t)
		cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(2000)})
		id := seedSession(t, chats, conversation()[:2]...)

		// No Complete expectation: any summary call fails the test.
		c := service.NewContextCompressor(chats, cfg, mocks.NewMockCompleter(t), fixedEstimator(2500))
		for range 3 {
			did, err := c.Compress(ctx, id)
			require.NoError(t, err)
			assert.False(t, did)
		}

		got, _ := chats.GetSession(id)
		assert.Empty(t, got.ContextSummary)
		assert.Empty(t, got.Settings.SummarizedIDs)
	})

	t.Run("Third message makes the oldest summarizable", func(t *testing.T) {
		chats, cfg := newStores(t)
		cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(2000)})
		id := seedSession(t, chats, conversation()[:3]...)

		completer := mocks.NewMockCompleter(t)
		completer.On("Complete", ctx, mock.MatchedBy(isSummaryRequest)).Return("Summary of pho.", nil).Once()

		c := service.NewContextCompressor(chats, cfg, completer, fixedEstimator(2500))
		did, err := c.Compress(ctx, id)
		require.NoError(t, err)
		assert.True(t, did)

		got, _ := chats.GetSession(id)
		assert.Equal(t, []string{"u1"}, got.Settings.SummarizedIDs)
	})

	t.Run("Unknown session", func(t *testing.T) {
		chats, cfg := newStores(t)
		c := service.NewContextCompressor(chats, cfg, mocks.NewMockCompleter(t), fixedEstimator(1_000_000))
		did, err := c.Compress(ctx, "missing")
		assert.NoError(t, err)
		assert.False(t, did)
	})
}

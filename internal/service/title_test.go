package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parley/backend/internal/llm"
	"parley/backend/internal/llm/mocks"
	"parley/backend/internal/model"
	"parley/backend/internal/service"
)

func isTitleRequest(req *llm.CompletionRequest) bool {
	return strings.Contains(req.Messages[len(req.Messages)-1].Content, "2-10 word title")
}

func TestTitleGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Generates once enough messages exist", func(t *testing.T) {
		chats, cfg := newStores(t)
		id := seedSession(t, chats, conversation()[:4]...)

		completer := mocks.NewMockCompleter(t)
		completer.On("Complete", ctx, mock.MatchedBy(isTitleRequest)).Return(`"Pho Origins."`, nil).Once()

		g := service.NewTitleGenerator(chats, cfg, completer)
		did, err := g.Generate(ctx, id)
		require.NoError(t, err)
		assert.True(t, did)

		got, _ := chats.GetSession(id)
		assert.Equal(t, "Pho Origins", got.Title)
		assert.True(t, got.IsTitleGenerated)

		did, err = g.Generate(ctx, id)
		require.NoError(t, err)
		assert.False(t, did, "a generated title is never regenerated")
	})

	t.Run("Too few messages", func(t *testing.T) {
		chats, cfg := newStores(t)
		id := seedSession(t, chats,
			msg("s", model.RoleSystem, "be nice", 0),
			msg("u1", model.RoleUser, "hi", 1),
			msg("a1", model.RoleAssistant, "hello", 2),
			msg("u2", model.RoleUser, "pho?", 3),
		)

		g := service.NewTitleGenerator(chats, cfg, mocks.NewMockCompleter(t))
		did, err := g.Generate(ctx, id)
		require.NoError(t, err)
		assert.False(t, did)
	})

	t.Run("Disabled in config", func(t *testing.T) {
		chats, cfg := newStores(t)
		cfg.Update(model.ConfigPatch{AutoGenerateTitle: ptr(false)})
		id := seedSession(t, chats, conversation()...)

		g := service.NewTitleGenerator(chats, cfg, mocks.NewMockCompleter(t))
		did, err := g.Generate(ctx, id)
		require.NoError(t, err)
		assert.False(t, did)
	})
}

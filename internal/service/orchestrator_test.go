package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/llm"
	"parley/backend/internal/llm/mocks"
	"parley/backend/internal/model"
	"parley/backend/internal/service"
	"parley/backend/internal/store"
	"parley/backend/internal/tokenizer"
)

type orchestratorFixture struct {
	chats     *store.ChatStore
	cfg       *store.ConfigStore
	completer *mocks.MockCompleter
	orch      *service.Orchestrator
}

func newOrchestrator(t *testing.T, estimator tokenizer.Estimator) orchestratorFixture {
	t.Helper()
	chats, cfg := newStores(t)
	completer := mocks.NewMockCompleter(t)
	titles := service.NewTitleGenerator(chats, cfg, completer)
	compressor := service.NewContextCompressor(chats, cfg, completer, estimator)
	orch := service.NewOrchestrator(chats, cfg, completer, titles, compressor, 0)
	return orchestratorFixture{chats: chats, cfg: cfg, completer: completer, orch: orch}
}

func collect(sink <-chan model.StreamResponse) []model.StreamResponse {
	var events []model.StreamResponse
	for ev := range sink {
		events = append(events, ev)
	}
	return events
}

func TestOrchestrator_Submit(t *testing.T) {
	f := newOrchestrator(t, tokenizer.Heuristic{})
	id := seedSession(t, f.chats, msg("s", model.RoleSystem, "You are a food guide.", 0))
	f.chats.UpdateInput(id, "What is pho?")

	var sent *llm.CompletionRequest
	f.completer.On("Stream", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*llm.CompletionRequest) }).
		Return(mocks.NewFakeStream("Pho ", "is a ", "soup."), nil).Once()

	sink := make(chan model.StreamResponse)
	run, err := f.orch.Submit(context.Background(), id, "What is pho?", service.SubmitOptions{Language: "vi"}, sink)
	require.NoError(t, err)

	events := collect(sink)
	require.NoError(t, run.Wait())
	f.orch.Drain()

	require.Len(t, events, 4)
	assert.Equal(t, "Pho ", events[0].Content)
	assert.Equal(t, run.MessageID, events[0].MessageID)
	last := events[3]
	assert.True(t, last.Done)
	assert.Equal(t, string(service.StateCompleted), last.State)

	assert.Equal(t, service.StateCompleted, run.State())
	assert.Equal(t, "Pho is a soup.", run.Content())

	got, _ := f.chats.GetSession(id)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, model.RoleUser, got.Messages[1].Role)
	assert.Equal(t, "What is pho?", got.Messages[1].Content)
	assert.Equal(t, run.MessageID, got.Messages[2].ID)
	assert.Equal(t, "Pho is a soup.", got.Messages[2].Content)
	assert.Empty(t, got.Input, "the draft is cleared on submit")

	require.NotNil(t, sent)
	assert.Equal(t, []llm.Message{
		{Role: "system", Content: "You are a food guide."},
		{Role: "user", Content: "What is pho?"},
	}, sent.Messages)
	assert.Equal(t, "vi", sent.Language)
	assert.Equal(t, 2048, sent.MaxTokens)
	assert.True(t, sent.Stream)

	_, active := f.orch.Active(id)
	assert.False(t, active)
}

func TestOrchestrator_RequestUsesSummary(t *testing.T) {
	f := newOrchestrator(t, tokenizer.Heuristic{})
	id := seedSession(t, f.chats, conversation()...)
	f.chats.UpdateSummary(id, "They discussed pho.", []string{"u1", "a1", "u2"})
	f.chats.UpdateSettings(id, model.SettingsPatch{Model: ptr("gpt-4"), Temperature: ptr(1.1)})

	var sent *llm.CompletionRequest
	f.completer.On("Stream", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*llm.CompletionRequest) }).
		Return(mocks.NewFakeStream("ok"), nil).Once()
	f.completer.On("Complete", mock.Anything, mock.MatchedBy(isTitleRequest)).Return("Vietnamese Noodle Soups", nil).Maybe()

	sink := make(chan model.StreamResponse)
	run, err := f.orch.Submit(context.Background(), id, "Is it spicy?", service.SubmitOptions{}, sink)
	require.NoError(t, err)
	collect(sink)
	require.NoError(t, run.Wait())
	f.orch.Drain()

	require.NotNil(t, sent)
	assert.Equal(t, []llm.Message{
		{Role: "system", Content: "Summary of the earlier conversation:\nThey discussed pho."},
		{Role: "assistant", Content: "Northern Vietnam, around Nam Dinh."},
		{Role: "user", Content: "And bun cha?"},
		{Role: "user", Content: "Is it spicy?"},
	}, sent.Messages)
	assert.Equal(t, "gpt-4", sent.Model)
	require.NotNil(t, sent.Temperature)
	assert.Equal(t, 1.1, *sent.Temperature)
}

func TestOrchestrator_StopMidStream(t *testing.T) {
	f := newOrchestrator(t, tokenizer.Heuristic{})
	id := seedSession(t, f.chats)

	stream := mocks.NewFakeStream("Pho ", "is ", "a soup.")
	stream.Gate = make(chan struct{})
	f.completer.On("Stream", mock.Anything, mock.Anything).Return(stream, nil).Once()

	sink := make(chan model.StreamResponse)
	run, err := f.orch.Submit(context.Background(), id, "What is pho?", service.SubmitOptions{}, sink)
	require.NoError(t, err)

	stream.Gate <- struct{}{}
	first := <-sink
	stream.Gate <- struct{}{}
	second := <-sink
	assert.Equal(t, "Pho ", first.Content)
	assert.Equal(t, "is ", second.Content)
	assert.Equal(t, service.StateStreaming, run.State())

	assert.True(t, f.orch.Stop(id))
	rest := collect(sink)
	require.NoError(t, run.Wait())

	require.Len(t, rest, 1)
	assert.True(t, rest[0].Done)
	assert.Equal(t, string(service.StateCancelled), rest[0].State)

	assert.Equal(t, service.StateCancelled, run.State())
	assert.Equal(t, "Pho is ", run.Content())
	assert.True(t, stream.Closed())

	got, _ := f.chats.GetSession(id)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Pho is ", got.Messages[1].Content, "partial content stays in place")

	assert.False(t, run.Stop(), "stopping a terminal run is a no-op")
	assert.False(t, f.orch.Stop(id))
	assert.Equal(t, service.StateCancelled, run.State())

	f.orch.Drain()
}

func TestOrchestrator_Failures(t *testing.T) {
	t.Run("Upstream rejects the request", func(t *testing.T) {
		f := newOrchestrator(t, tokenizer.Heuristic{})
		id := seedSession(t, f.chats)
		f.completer.On("Stream", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: api returned status 502", app_errors.ErrUpstream)).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "What is pho?", service.SubmitOptions{}, sink)
		require.NoError(t, err)
		events := collect(sink)

		assert.ErrorIs(t, run.Wait(), app_errors.ErrUpstream)
		assert.Equal(t, service.StateFailed, run.State())
		require.Len(t, events, 1)
		assert.Equal(t, string(service.StateFailed), events[0].State)
		assert.Contains(t, events[0].Error, "502")

		got, _ := f.chats.GetSession(id)
		require.Len(t, got.Messages, 1, "the user message stays, the empty reply does not")
		assert.Equal(t, model.RoleUser, got.Messages[0].Role)
	})

	t.Run("Stream breaks midway", func(t *testing.T) {
		f := newOrchestrator(t, tokenizer.Heuristic{})
		id := seedSession(t, f.chats)
		stream := mocks.NewFakeStream("Pho is")
		stream.Err = fmt.Errorf("%w: stream read failed: unexpected EOF", app_errors.ErrUpstream)
		f.completer.On("Stream", mock.Anything, mock.Anything).Return(stream, nil).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "What is pho?", service.SubmitOptions{}, sink)
		require.NoError(t, err)
		collect(sink)

		assert.ErrorIs(t, run.Wait(), app_errors.ErrUpstream)
		got, _ := f.chats.GetSession(id)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "Pho is", got.Messages[1].Content)
	})
}

func TestOrchestrator_SubmitRejects(t *testing.T) {
	f := newOrchestrator(t, tokenizer.Heuristic{})
	id := seedSession(t, f.chats)

	t.Run("Empty input", func(t *testing.T) {
		sink := make(chan model.StreamResponse)
		_, err := f.orch.Submit(context.Background(), id, "   ", service.SubmitOptions{}, sink)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		_, open := <-sink
		assert.False(t, open, "the sink is closed on rejection")
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, err := f.orch.Submit(context.Background(), "missing", "hi", service.SubmitOptions{}, nil)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Concurrent run in the same session", func(t *testing.T) {
		stream := mocks.NewFakeStream("never delivered")
		stream.Gate = make(chan struct{})
		f.completer.On("Stream", mock.Anything, mock.Anything).Return(stream, nil).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "first", service.SubmitOptions{}, sink)
		require.NoError(t, err)

		_, err = f.orch.Submit(context.Background(), id, "second", service.SubmitOptions{}, nil)
		assert.ErrorIs(t, err, app_errors.ErrConflict)

		assert.True(t, run.Stop())
		collect(sink)
		assert.Equal(t, service.StateCancelled, run.State())
	})
}

func TestOrchestrator_Regenerate(t *testing.T) {
	history := []model.ChatMessage{
		msg("u1", model.RoleUser, "What is pho?", 1),
		msg("a1", model.RoleAssistant, "A soup.", 2),
		msg("u2", model.RoleUser, "Is it spicy?", 3),
		msg("a2", model.RoleAssistant, "Not usually.", 4),
	}

	for name, target := range map[string]string{"assistant target": "a2", "user target": "u2"} {
		t.Run(name, func(t *testing.T) {
			f := newOrchestrator(t, tokenizer.Heuristic{})
			id := seedSession(t, f.chats, history...)
			f.cfg.Update(model.ConfigPatch{AutoGenerateTitle: ptr(false)})

			var sent *llm.CompletionRequest
			f.completer.On("Stream", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { sent = args.Get(1).(*llm.CompletionRequest) }).
				Return(mocks.NewFakeStream("Only with chili."), nil).Once()

			sink := make(chan model.StreamResponse)
			run, err := f.orch.Regenerate(context.Background(), id, target, service.SubmitOptions{}, sink)
			require.NoError(t, err)
			collect(sink)
			require.NoError(t, run.Wait())
			f.orch.Drain()

			require.NotNil(t, sent)
			assert.Equal(t, []llm.Message{
				{Role: "user", Content: "What is pho?"},
				{Role: "assistant", Content: "A soup."},
				{Role: "user", Content: "Is it spicy?"},
			}, sent.Messages)

			got, _ := f.chats.GetSession(id)
			ids := make([]string, 0, len(got.Messages))
			for _, m := range got.Messages {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, []string{"u1", "a1", "u2", run.MessageID}, ids)
			assert.Equal(t, "Only with chili.", got.Messages[3].Content)
		})
	}

	t.Run("Unknown message", func(t *testing.T) {
		f := newOrchestrator(t, tokenizer.Heuristic{})
		id := seedSession(t, f.chats, history...)

		_, err := f.orch.Regenerate(context.Background(), id, "missing", service.SubmitOptions{}, nil)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)

		got, _ := f.chats.GetSession(id)
		assert.Len(t, got.Messages, 4)
		_, active := f.orch.Active(id)
		assert.False(t, active)
	})
}

func TestOrchestrator_PostProcessing(t *testing.T) {
	t.Run("Title is generated after the run completes", func(t *testing.T) {
		f := newOrchestrator(t, tokenizer.Heuristic{})
		id := seedSession(t, f.chats, conversation()[:3]...)

		f.completer.On("Stream", mock.Anything, mock.Anything).Return(mocks.NewFakeStream("Nam Dinh."), nil).Once()
		f.completer.On("Complete", mock.Anything, mock.MatchedBy(isTitleRequest)).Return("Pho Origins", nil).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "Where exactly?", service.SubmitOptions{}, sink)
		require.NoError(t, err)
		collect(sink)
		require.NoError(t, run.Wait())
		f.orch.Drain()

		got, _ := f.chats.GetSession(id)
		assert.Equal(t, "Pho Origins", got.Title)
	})

	t.Run("Compression runs once when over threshold", func(t *testing.T) {
		f := newOrchestrator(t, fixedEstimator(2500))
		f.cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(2000), AutoGenerateTitle: ptr(false)})
		id := seedSession(t, f.chats, conversation()...)

		f.completer.On("Stream", mock.Anything, mock.Anything).Return(mocks.NewFakeStream("Grilled pork with noodles."), nil).Once()
		f.completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryRequest)).Return("Pho, its origin and bun cha.", nil).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "Tell me more", service.SubmitOptions{}, sink)
		require.NoError(t, err)
		collect(sink)
		require.NoError(t, run.Wait())
		f.orch.Drain()

		got, _ := f.chats.GetSession(id)
		assert.Equal(t, "Pho, its origin and bun cha.", got.ContextSummary)
		assert.NotEmpty(t, got.Settings.SummarizedIDs)
		assert.Len(t, got.Messages, 7)
		f.completer.AssertNumberOfCalls(t, "Complete", 1)
	})

	t.Run("Cancelled runs skip post-processing", func(t *testing.T) {
		f := newOrchestrator(t, fixedEstimator(1_000_000))
		id := seedSession(t, f.chats, conversation()...)

		stream := mocks.NewFakeStream("partial")
		stream.Gate = make(chan struct{})
		f.completer.On("Stream", mock.Anything, mock.Anything).Return(stream, nil).Once()

		sink := make(chan model.StreamResponse)
		run, err := f.orch.Submit(context.Background(), id, "Tell me more", service.SubmitOptions{}, sink)
		require.NoError(t, err)
		stream.Gate <- struct{}{}
		<-sink
		run.Stop()
		collect(sink)
		f.orch.Drain()

		f.completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})
}

func TestOrchestrator_NextSubmitWaitsForPostProcessing(t *testing.T) {
	f := newOrchestrator(t, fixedEstimator(2500))
	f.cfg.Update(model.ConfigPatch{MessageCompressionThreshold: ptr(2000), AutoGenerateTitle: ptr(false)})
	id := seedSession(t, f.chats, conversation()...)

	release := make(chan struct{})
	f.completer.On("Stream", mock.Anything, mock.Anything).Return(mocks.NewFakeStream("first"), nil).Once()
	f.completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryRequest)).
		Run(func(mock.Arguments) { <-release }).
		Return("Summary after first run.", nil).Once()

	sink := make(chan model.StreamResponse)
	run, err := f.orch.Submit(context.Background(), id, "one", service.SubmitOptions{}, sink)
	require.NoError(t, err)
	collect(sink)
	require.NoError(t, run.Wait())

	var sent *llm.CompletionRequest
	f.completer.On("Stream", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*llm.CompletionRequest) }).
		Return(mocks.NewFakeStream("second"), nil).Once()
	f.completer.On("Complete", mock.Anything, mock.MatchedBy(isSummaryRequest)).Return("Later summary.", nil).Maybe()

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	sink2 := make(chan model.StreamResponse)
	run2, err := f.orch.Submit(context.Background(), id, "two", service.SubmitOptions{}, sink2)
	require.NoError(t, err)
	collect(sink2)
	require.NoError(t, run2.Wait())
	f.orch.Drain()

	require.NotNil(t, sent)
	assert.True(t, strings.HasPrefix(sent.Messages[0].Content, "Summary of the earlier conversation:\nSummary after first run."),
		"the second request already carries the first run's summary")
}

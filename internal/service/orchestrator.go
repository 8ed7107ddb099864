package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/llm"
	"parley/backend/internal/model"
)

// RunState is the lifecycle position of one completion run.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateSending   RunState = "sending"
	StateStreaming RunState = "streaming"
	StateCompleted RunState = "completed"
	StateCancelled RunState = "cancelled"
	StateFailed    RunState = "failed"
)

// Terminal reports whether no further transition can happen.
func (s RunState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// postProcessTimeout bounds title generation plus compression after a run.
const postProcessTimeout = 2 * time.Minute

// Run is the handle of one in-flight request/response cycle.
type Run struct {
	ID        string
	SessionID string
	MessageID string

	mu      sync.Mutex
	state   RunState
	content strings.Builder
	err     error
	stream  llm.Stream
	cancel  context.CancelFunc
	done    chan struct{}
}

func (r *Run) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Content returns the assistant text received so far.
func (r *Run) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content.String()
}

func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed once the run reaches a terminal state and its result is
// committed to the store.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run ends and returns its error, if it failed.
func (r *Run) Wait() error {
	<-r.done
	return r.Err()
}

// Stop cancels the run if it is still sending or streaming. Content received
// before the call stays in place. It reports whether it changed anything.
func (r *Run) Stop() bool {
	r.mu.Lock()
	if r.state != StateSending && r.state != StateStreaming {
		r.mu.Unlock()
		return false
	}
	r.state = StateCancelled
	stream := r.stream
	r.mu.Unlock()

	r.cancel()
	if stream != nil {
		_ = stream.Close()
	}
	return true
}

// accept records a chunk unless the run was cancelled meanwhile.
func (r *Run) accept(chunk string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateCancelled {
		return "", false
	}
	r.state = StateStreaming
	r.content.WriteString(chunk)
	return r.content.String(), true
}

// finish moves the run to its terminal state. A cancellation wins over
// whatever the transport reported afterwards.
func (r *Run) finish(err error) RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.state == StateCancelled:
	case err != nil:
		r.state = StateFailed
		r.err = err
	default:
		r.state = StateCompleted
	}
	return r.state
}

func (r *Run) setStream(s llm.Stream) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateCancelled {
		return false
	}
	r.stream = s
	return true
}

// SubmitOptions carries the per-request extras that are not session state.
type SubmitOptions struct {
	Language string
}

// Orchestrator drives streamed completions for chat sessions. Each session
// has at most one active run, and a new run waits for the title and summary
// work of the previous one.
type Orchestrator struct {
	store        SessionStore
	config       ConfigSource
	completer    llm.Completer
	titles       *TitleGenerator
	compressor   *ContextCompressor
	syncInterval time.Duration
	now          func() time.Time

	mu     sync.Mutex
	active map[string]*Run
	post   map[string]chan struct{}
	wg     sync.WaitGroup
}

func NewOrchestrator(
	store SessionStore,
	config ConfigSource,
	completer llm.Completer,
	titles *TitleGenerator,
	compressor *ContextCompressor,
	syncInterval time.Duration,
) *Orchestrator {
	return &Orchestrator{
		store:        store,
		config:       config,
		completer:    completer,
		titles:       titles,
		compressor:   compressor,
		syncInterval: syncInterval,
		now:          time.Now,
		active:       make(map[string]*Run),
		post:         make(map[string]chan struct{}),
	}
}

// Submit appends input as a user message and streams the assistant reply.
// Chunks and a final Done event go to sink. The sink is always closed, right
// away when Submit fails and otherwise once the run ends, so the caller must
// keep draining it. sink may be nil.
func (o *Orchestrator) Submit(ctx context.Context, sessionID, input string, opts SubmitOptions, sink chan<- model.StreamResponse) (*Run, error) {
	if strings.TrimSpace(input) == "" {
		closeSink(sink)
		return nil, fmt.Errorf("%w: message content is required", app_errors.ErrValidation)
	}
	return o.start(ctx, sessionID, input, opts, sink, func(session model.ChatSession) ([]model.ChatMessage, error) {
		return session.Messages, nil
	})
}

// Regenerate drops messageID and everything after it, re-queues the message
// when the user wrote it, and streams a fresh reply.
func (o *Orchestrator) Regenerate(ctx context.Context, sessionID, messageID string, opts SubmitOptions, sink chan<- model.StreamResponse) (*Run, error) {
	return o.start(ctx, sessionID, "", opts, sink, func(session model.ChatSession) ([]model.ChatMessage, error) {
		ordered := model.Chronological(session.Messages)
		kept := make([]model.ChatMessage, 0, len(ordered))
		for _, m := range ordered {
			if m.ID == messageID {
				if m.Role == model.RoleUser {
					kept = append(kept, m)
				}
				return kept, nil
			}
			kept = append(kept, m)
		}
		return nil, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
	})
}

// Stop cancels the session's active run, if any.
func (o *Orchestrator) Stop(sessionID string) bool {
	o.mu.Lock()
	run := o.active[sessionID]
	o.mu.Unlock()
	if run == nil {
		return false
	}
	return run.Stop()
}

// Active returns the session's in-flight run.
func (o *Orchestrator) Active(sessionID string) (*Run, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	run, ok := o.active[sessionID]
	return run, ok
}

// Drain waits for every background title and summary task.
func (o *Orchestrator) Drain() {
	o.wg.Wait()
}

type prepareFunc func(session model.ChatSession) ([]model.ChatMessage, error)

func (o *Orchestrator) start(ctx context.Context, sessionID, input string, opts SubmitOptions, sink chan<- model.StreamResponse, prepare prepareFunc) (*Run, error) {
	if _, ok := o.store.GetSession(sessionID); !ok {
		closeSink(sink)
		return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	run := &Run{
		ID:        shortuuid.New(),
		SessionID: sessionID,
		state:     StateIdle,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	o.mu.Lock()
	if _, busy := o.active[sessionID]; busy {
		o.mu.Unlock()
		cancel()
		closeSink(sink)
		return nil, fmt.Errorf("%w: a reply is already streaming in this session", app_errors.ErrConflict)
	}
	o.active[sessionID] = run
	pending := o.post[sessionID]
	o.mu.Unlock()

	release := func() {
		o.mu.Lock()
		delete(o.active, sessionID)
		o.mu.Unlock()
	}
	abort := func(err error) (*Run, error) {
		release()
		cancel()
		closeSink(sink)
		return nil, err
	}

	if pending != nil {
		select {
		case <-pending:
		case <-ctx.Done():
			return abort(ctx.Err())
		}
	}

	session, ok := o.store.GetSession(sessionID)
	if !ok {
		return abort(fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID))
	}
	base, err := prepare(session)
	if err != nil {
		return abort(err)
	}
	session.Messages = base

	req := o.buildRequest(session, input, opts)

	now := o.now()
	messages := append([]model.ChatMessage(nil), base...)
	if input != "" {
		messages = append(messages, model.ChatMessage{
			ID:        uuid.NewString(),
			Role:      model.RoleUser,
			Content:   input,
			CreatedAt: now,
		})
	}
	assistant := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		CreatedAt: now.Add(time.Millisecond),
	}
	messages = append(messages, assistant)
	run.MessageID = assistant.ID

	o.store.SyncMessages(sessionID, messages)
	if input != "" {
		o.store.UpdateInput(sessionID, "")
	}

	run.mu.Lock()
	run.state = StateSending
	run.mu.Unlock()
	slog.Info("Starting completion run", "session_id", sessionID, "run_id", run.ID, "messages", len(req.Messages))

	go o.stream(runCtx, run, req, sink)
	return run, nil
}

func (o *Orchestrator) buildRequest(session model.ChatSession, input string, opts SubmitOptions) *llm.CompletionRequest {
	cfg := o.config.Get()

	var messages []llm.Message
	if session.ContextSummary != "" {
		messages = append(messages, llm.Message{
			Role:    string(model.RoleSystem),
			Content: summaryContextPrefix + session.ContextSummary,
		})
	}
	for _, m := range session.Unsummarized() {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	if input != "" {
		messages = append(messages, llm.Message{Role: string(model.RoleUser), Content: input})
	}

	settings := session.Settings
	modelName := settings.Model
	if modelName == "" {
		modelName = cfg.DefaultModel
	}
	return &llm.CompletionRequest{
		Messages:         messages,
		Model:            modelName,
		MaxTokens:        settings.MaxTokens,
		Temperature:      llm.Float(settings.Temperature),
		TopP:             llm.Float(settings.TopP),
		FrequencyPenalty: llm.Float(settings.FrequencyPenalty),
		PresencePenalty:  llm.Float(settings.PresencePenalty),
		Stream:           true,
		Language:         opts.Language,
		APIKey:           cfg.CustomAPIKey,
		BaseURL:          cfg.CustomBaseURL,
	}
}

func (o *Orchestrator) stream(ctx context.Context, run *Run, req *llm.CompletionRequest, sink chan<- model.StreamResponse) {
	defer closeSink(sink)
	defer close(run.done)
	defer run.cancel()

	err := o.consume(ctx, run, req, sink)
	state := run.finish(err)

	o.commit(run, state)

	final := model.StreamResponse{RunID: run.ID, MessageID: run.MessageID, Done: true, State: string(state)}
	if state == StateFailed {
		final.Error = err.Error()
		slog.Warn("Completion run failed", "session_id", run.SessionID, "run_id", run.ID, "error", err)
	} else {
		slog.Info("Completion run finished", "session_id", run.SessionID, "run_id", run.ID, "state", state)
	}

	o.mu.Lock()
	delete(o.active, run.SessionID)
	if state == StateCompleted {
		ch := make(chan struct{})
		o.post[run.SessionID] = ch
		o.wg.Add(1)
		go o.postProcess(run.SessionID, ch)
	}
	o.mu.Unlock()

	send(sink, final)
}

func (o *Orchestrator) consume(ctx context.Context, run *Run, req *llm.CompletionRequest, sink chan<- model.StreamResponse) error {
	stream, err := o.completer.Stream(ctx, req)
	if err != nil {
		return err
	}
	if !run.setStream(stream) {
		_ = stream.Close()
		return nil
	}
	defer func() { _ = stream.Close() }()

	lastSync := o.now()
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		content, ok := run.accept(chunk)
		if !ok {
			return nil
		}
		if now := o.now(); now.Sub(lastSync) >= o.syncInterval {
			o.syncContent(run, content)
			lastSync = now
		}
		send(sink, model.StreamResponse{RunID: run.ID, MessageID: run.MessageID, Content: chunk, State: string(StateStreaming)})
	}
}

// commit writes the final assistant text. A run that ends without any text
// leaves no empty assistant message behind.
func (o *Orchestrator) commit(run *Run, state RunState) {
	content := run.Content()
	if content == "" && state != StateCompleted {
		session, ok := o.store.GetSession(run.SessionID)
		if !ok {
			return
		}
		idx := session.FindMessage(run.MessageID)
		if idx < 0 {
			return
		}
		session.Messages = append(session.Messages[:idx], session.Messages[idx+1:]...)
		o.store.SyncMessages(run.SessionID, session.Messages)
		return
	}
	o.syncContent(run, content)
}

// syncContent copies the streamed text into the stored assistant message,
// leaving every other message as the store currently has it.
func (o *Orchestrator) syncContent(run *Run, content string) {
	session, ok := o.store.GetSession(run.SessionID)
	if !ok {
		return
	}
	idx := session.FindMessage(run.MessageID)
	if idx < 0 {
		return
	}
	session.Messages[idx].Content = content
	o.store.SyncMessages(run.SessionID, session.Messages)
}

func (o *Orchestrator) postProcess(sessionID string, done chan struct{}) {
	defer o.wg.Done()
	defer func() {
		o.mu.Lock()
		if o.post[sessionID] == done {
			delete(o.post, sessionID)
		}
		o.mu.Unlock()
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), postProcessTimeout)
	defer cancel()

	if o.titles != nil {
		if _, err := o.titles.Generate(ctx, sessionID); err != nil {
			slog.Warn("Title generation failed", "session_id", sessionID, "error", err)
		}
	}
	if o.compressor != nil {
		if _, err := o.compressor.Compress(ctx, sessionID); err != nil {
			slog.Warn("Context compression failed", "session_id", sessionID, "error", err)
		}
	}
}

func send(sink chan<- model.StreamResponse, ev model.StreamResponse) {
	if sink != nil {
		sink <- ev
	}
}

func closeSink(sink chan<- model.StreamResponse) {
	if sink != nil {
		close(sink)
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"agentclone-be/internal/dto"
	"agentclone-be/internal/entity"
	"agentclone-be/internal/pkg/logger"
	"agentclone-be/internal/repository/contract"
	filerepo "agentclone-be/internal/repository/file"
	"agentclone-be/internal/repository/memory"
	"agentclone-be/internal/tools"
	"agentclone-be/pkg/llm"
	"agentclone-be/pkg/rag/index"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays pre-baked completions and records what it was
// asked, so tests can assert on the exact message sequence and offered tools.
type scriptedProvider struct {
	script []scriptStep
	calls  []recordedCall
}

type scriptStep struct {
	completion *llm.Completion
	err        error
}

type recordedCall struct {
	messages []llm.Message
	options  llm.Options
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	var o llm.Options
	for _, opt := range options {
		opt(&o)
	}
	p.calls = append(p.calls, recordedCall{messages: history, options: o})

	if len(p.script) == 0 {
		return nil, fmt.Errorf("scripted provider exhausted after %d calls", len(p.calls))
	}
	step := p.script[0]
	p.script = p.script[1:]
	return step.completion, step.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	c, err := p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

func text(s string) scriptStep {
	return scriptStep{completion: &llm.Completion{Text: s}}
}

func toolCall(name, query string) scriptStep {
	return scriptStep{completion: &llm.Completion{
		ToolCall: &llm.ToolCall{Name: name, Arguments: map[string]interface{}{"query": query}},
	}}
}

// stubIndexProvider serves one canned index for every scope and records the
// queries it saw.
type stubIndexProvider struct {
	passages []string
	queries  []string
}

func (p *stubIndexProvider) For(scope string) (index.Index, error) {
	return &stubScopedIndex{provider: p}, nil
}

type stubScopedIndex struct {
	provider *stubIndexProvider
}

func (i *stubScopedIndex) Add(ctx context.Context, passages []string) error {
	i.provider.passages = append(i.provider.passages, passages...)
	return nil
}

func (i *stubScopedIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	i.provider.queries = append(i.provider.queries, text)
	if k > len(i.provider.passages) {
		k = len(i.provider.passages)
	}
	return i.provider.passages[:k], nil
}

func (i *stubScopedIndex) Count(ctx context.Context) (int, error) {
	return len(i.provider.passages), nil
}

type chatFixture struct {
	svc         IChatService
	provider    *scriptedProvider
	indexes     *stubIndexProvider
	personaRepo contract.PersonaRepository
	durable     contract.HistoryRepository
	session     contract.HistoryRepository
}

func newChatFixture(t *testing.T, script ...scriptStep) *chatFixture {
	t.Helper()

	dataDir := t.TempDir()
	provider := &scriptedProvider{script: script}
	indexes := &stubIndexProvider{}

	registry := tools.NewRegistry()
	registry.Register(tools.NewRetrieveDocumentsTool(indexes, 2))

	personaRepo := filerepo.NewPersonaRepository(dataDir)
	durable := filerepo.NewHistoryRepository(dataDir)
	session := memory.NewHistoryRepository()

	svc := NewChatService(personaRepo, durable, session, indexes, registry, provider, ChatOptions{
		Temperature: 0.5,
		CallTimeout: 5 * time.Second,
		MaxRetries:  0,
		TopK:        2,
		IndexScope:  "shared",
	}, logger.NewNopLogger())

	return &chatFixture{
		svc:         svc,
		provider:    provider,
		indexes:     indexes,
		personaRepo: personaRepo,
		durable:     durable,
		session:     session,
	}
}

func (f *chatFixture) addPersona(t *testing.T, persona *entity.Persona) *entity.Persona {
	t.Helper()
	require.NoError(t, f.personaRepo.Save(context.Background(), persona))
	return persona
}

func basicPersona(name string, toolsEnabled []string, memoryEnabled bool) *entity.Persona {
	return &entity.Persona{
		Id:            uuid.New(),
		Name:          name,
		Type:          "Research Assistant",
		SourceType:    "File",
		Source:        "handbook.pdf",
		Tone:          "precise",
		ToolsEnabled:  toolsEnabled,
		MemoryEnabled: memoryEnabled,
	}
}

func TestChatDirectAnswerWithoutTools(t *testing.T) {
	f := newChatFixture(t, text("direct answer"))
	persona := f.addPersona(t, basicPersona("Ada", nil, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "direct answer", resp.Reply)
	assert.Empty(t, resp.ToolUsed)

	// Persona enables nothing, so the model must be offered no tools and the
	// index must never be touched.
	require.Len(t, f.provider.calls, 1)
	assert.Empty(t, f.provider.calls[0].options.Tools)
	assert.Empty(t, f.indexes.queries)
}

func TestChatToolCallWithoutToolsEnabledFallsBack(t *testing.T) {
	f := newChatFixture(t, toolCall(tools.RetrieveDocumentsName, "anything"))
	persona := f.addPersona(t, basicPersona("Ada", nil, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "hello",
	})
	require.NoError(t, err)

	// The tool is registered globally but the persona did not enable it, so
	// the request is treated as unavailable, not executed.
	assert.Equal(t, toolFallbackReply, resp.Reply)
	assert.Empty(t, resp.ToolUsed)
	assert.Len(t, f.provider.calls, 1)
	assert.Empty(t, f.indexes.queries)
}

func TestChatOneHopToolRoundTrip(t *testing.T) {
	f := newChatFixture(t,
		toolCall(tools.RetrieveDocumentsName, "chapter three"),
		text("grounded answer"),
	)
	f.indexes.passages = []string{"passage one", "passage two"}
	persona := f.addPersona(t, basicPersona("Ada", []string{tools.RetrieveDocumentsName}, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "what does chapter three say?",
	})
	require.NoError(t, err)

	assert.Equal(t, "grounded answer", resp.Reply)
	assert.Equal(t, tools.RetrieveDocumentsName, resp.ToolUsed)

	require.Len(t, f.provider.calls, 2)

	// First call: tools offered, pre-retrieval already ran on the user input.
	first := f.provider.calls[0]
	require.Len(t, first.options.Tools, 1)
	assert.Equal(t, tools.RetrieveDocumentsName, first.options.Tools[0].Name)
	require.NotEmpty(t, f.indexes.queries)
	assert.Equal(t, "what does chapter three say?", f.indexes.queries[0])

	// Second call: original sequence plus one system message with the tool
	// result, and no tools offered.
	second := f.provider.calls[1]
	assert.Empty(t, second.options.Tools)
	require.Len(t, second.messages, len(first.messages)+1)
	last := second.messages[len(second.messages)-1]
	assert.Equal(t, llm.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "passage one")

	// The tool itself queried the index with the model's own query.
	assert.Contains(t, f.indexes.queries, "chapter three")
}

func TestChatSecondToolRequestFallsBack(t *testing.T) {
	f := newChatFixture(t,
		toolCall(tools.RetrieveDocumentsName, "first"),
		toolCall(tools.RetrieveDocumentsName, "second"),
	)
	f.indexes.passages = []string{"passage"}
	persona := f.addPersona(t, basicPersona("Ada", []string{tools.RetrieveDocumentsName}, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "hello",
	})
	require.NoError(t, err)

	// The one tool round trip was spent; a second request is ignored.
	assert.Equal(t, toolFallbackReply, resp.Reply)
	assert.Len(t, f.provider.calls, 2)
	assert.NotContains(t, f.indexes.queries, "second")
}

func TestChatEmptyModelReplyFallsBack(t *testing.T) {
	f := newChatFixture(t, text(""))
	persona := f.addPersona(t, basicPersona("Ada", nil, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "hello",
	})
	require.NoError(t, err)

	// An empty completion must never be stored or shown verbatim.
	assert.Equal(t, noResponseReply, resp.Reply)

	turns, err := f.durable.Load(context.Background(), persona.Name)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, noResponseReply, turns[0].Output)
}

func TestChatUnknownToolFallsBack(t *testing.T) {
	f := newChatFixture(t, toolCall("web_search", "anything"))
	persona := f.addPersona(t, basicPersona("Ada", []string{tools.RetrieveDocumentsName}, true))

	resp, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: persona.Id,
		Message:   "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, toolFallbackReply, resp.Reply)
	assert.Len(t, f.provider.calls, 1)
}

func TestChatReferenceMaterialPrecedesHistory(t *testing.T) {
	f := newChatFixture(t, text("one"), text("two"))
	f.indexes.passages = []string{"relevant passage"}
	persona := f.addPersona(t, basicPersona("Ada", []string{tools.RetrieveDocumentsName}, true))

	ctx := context.Background()
	_, err := f.svc.Chat(ctx, &dto.ChatRequest{PersonaId: persona.Id, Message: "first question"})
	require.NoError(t, err)
	_, err = f.svc.Chat(ctx, &dto.ChatRequest{PersonaId: persona.Id, Message: "second question"})
	require.NoError(t, err)

	msgs := f.provider.calls[1].messages
	require.GreaterOrEqual(t, len(msgs), 5)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleSystem, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "relevant passage")
	assert.Equal(t, "first question", msgs[2].Content)
	assert.Equal(t, "one", msgs[3].Content)
	assert.Equal(t, "second question", msgs[len(msgs)-1].Content)
}

func TestChatHistoryStoreSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("memory enabled persists durably", func(t *testing.T) {
		f := newChatFixture(t, text("answer"))
		persona := f.addPersona(t, basicPersona("Durable", nil, true))

		_, err := f.svc.Chat(ctx, &dto.ChatRequest{PersonaId: persona.Id, Message: "hi"})
		require.NoError(t, err)

		turns, err := f.durable.Load(ctx, persona.Name)
		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, "hi", turns[0].Input)
		assert.Equal(t, "answer", turns[0].Output)

		sessionTurns, err := f.session.Load(ctx, persona.Name)
		require.NoError(t, err)
		assert.Empty(t, sessionTurns)
	})

	t.Run("memory disabled stays session scoped", func(t *testing.T) {
		f := newChatFixture(t, text("answer"))
		persona := f.addPersona(t, basicPersona("Ephemeral", nil, false))

		_, err := f.svc.Chat(ctx, &dto.ChatRequest{PersonaId: persona.Id, Message: "hi"})
		require.NoError(t, err)

		turns, err := f.durable.Load(ctx, persona.Name)
		require.NoError(t, err)
		assert.Empty(t, turns)

		sessionTurns, err := f.session.Load(ctx, persona.Name)
		require.NoError(t, err)
		require.Len(t, sessionTurns, 1)
	})
}

func TestChatRetriesTransientProviderFailure(t *testing.T) {
	f := newChatFixture(t) // script set below, options need MaxRetries
	dataDir := t.TempDir()
	provider := &scriptedProvider{script: []scriptStep{
		{err: fmt.Errorf("connection refused")},
		text("eventually"),
	}}
	personaRepo := filerepo.NewPersonaRepository(dataDir)
	svc := NewChatService(personaRepo, filerepo.NewHistoryRepository(dataDir), memory.NewHistoryRepository(),
		f.indexes, tools.NewRegistry(), provider, ChatOptions{
			Temperature: 0.5,
			CallTimeout: 5 * time.Second,
			MaxRetries:  1,
			TopK:        2,
			IndexScope:  "shared",
		}, logger.NewNopLogger())

	persona := basicPersona("Ada", nil, true)
	require.NoError(t, personaRepo.Save(context.Background(), persona))

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{PersonaId: persona.Id, Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "eventually", resp.Reply)
	assert.Len(t, provider.calls, 2)
}

func TestChatUnknownPersona(t *testing.T) {
	f := newChatFixture(t, text("unused"))

	_, err := f.svc.Chat(context.Background(), &dto.ChatRequest{
		PersonaId: uuid.New(),
		Message:   "hi",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agentclone-be/internal/apperror"
	"agentclone-be/internal/dto"
	"agentclone-be/internal/entity"
	"agentclone-be/internal/pkg/logger"
	"agentclone-be/internal/repository/contract"
	"agentclone-be/internal/tools"
	"agentclone-be/pkg/llm"
	"agentclone-be/pkg/rag/index"
	"agentclone-be/pkg/rag/prompt"
	"agentclone-be/pkg/rag/retriever"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"
)

// toolFallbackReply is returned when the model keeps asking for tools it
// cannot have: an unavailable capability, or a second request after its one
// tool round trip was already spent.
const toolFallbackReply = "I could not complete that request with the tools available to me. Could you rephrase it?"

// noResponseReply stands in for a completion that carried no text at all, so
// an empty string is never stored or shown as the answer.
const noResponseReply = "No response."

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, personaId uuid.UUID) ([]*dto.HistoryTurnResponse, error)
}

// ChatOptions carries the orchestration knobs from config.
type ChatOptions struct {
	Temperature float64
	CallTimeout time.Duration
	MaxRetries  int
	TopK        int
	IndexScope  string // "shared" or "persona"
}

type chatService struct {
	personaRepo    contract.PersonaRepository
	durableHistory contract.HistoryRepository
	sessionHistory contract.HistoryRepository
	indexes        index.Provider
	registry       *tools.Registry
	llmProvider    llm.Provider
	opts           ChatOptions
	tokenizer      *tiktoken.Tiktoken
	logger         logger.ILogger
}

func NewChatService(
	personaRepo contract.PersonaRepository,
	durableHistory contract.HistoryRepository,
	sessionHistory contract.HistoryRepository,
	indexes index.Provider,
	registry *tools.Registry,
	llmProvider llm.Provider,
	opts ChatOptions,
	log logger.ILogger,
) IChatService {
	// Token accounting is best-effort: without the encoding we just skip it.
	tokenizer, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Warn("ChatService", "tokenizer unavailable, prompt token counts disabled", map[string]interface{}{
			"error": err.Error(),
		})
		tokenizer = nil
	}

	return &chatService{
		personaRepo:    personaRepo,
		durableHistory: durableHistory,
		sessionHistory: sessionHistory,
		indexes:        indexes,
		registry:       registry,
		llmProvider:    llmProvider,
		opts:           opts,
		tokenizer:      tokenizer,
		logger:         log,
	}
}

// Chat runs one conversation turn: retrieve grounding material if the
// persona enables it, assemble the layered prompt, call the model, and give
// the model at most one tool round trip before the answer is final.
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	persona, err := s.personaRepo.FindById(ctx, req.PersonaId)
	if err != nil {
		return nil, err
	}

	historyRepo := s.historyFor(persona)
	history, err := historyRepo.Load(ctx, persona.Name)
	if err != nil {
		return nil, err
	}

	scope := s.scopeFor(persona)

	var retrieved []string
	if persona.HasTool(tools.RetrieveDocumentsName) {
		retrieved, err = s.retrieve(ctx, scope, req.Message)
		if err != nil {
			return nil, err
		}
	}

	messages := prompt.Assemble(persona, req.Message, retrieved, history)
	s.logPromptTokens(persona.Name, messages)

	schemas := s.registry.Schemas(persona.ToolsEnabled)
	completion, err := s.complete(ctx, messages, llm.WithTools(schemas))
	if err != nil {
		return nil, err
	}

	reply := completion.Text
	toolUsed := ""
	if completion.IsToolCall() {
		reply, toolUsed, err = s.runToolRoundTrip(ctx, persona, scope, messages, completion.ToolCall)
		if err != nil {
			return nil, err
		}
	}
	if reply == "" {
		reply = noResponseReply
	}

	turn := entity.Turn{
		Input:     req.Message,
		Output:    reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := historyRepo.Append(ctx, persona.Name, turn); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{Reply: reply, ToolUsed: toolUsed}, nil
}

func (s *chatService) History(ctx context.Context, personaId uuid.UUID) ([]*dto.HistoryTurnResponse, error) {
	persona, err := s.personaRepo.FindById(ctx, personaId)
	if err != nil {
		return nil, err
	}

	turns, err := s.historyFor(persona).Load(ctx, persona.Name)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.HistoryTurnResponse, 0, len(turns))
	for _, t := range turns {
		result = append(result, &dto.HistoryTurnResponse{
			Input:     t.Input,
			Output:    t.Output,
			CreatedAt: t.CreatedAt,
		})
	}
	return result, nil
}

// runToolRoundTrip executes the model's tool request and re-dispatches the
// original sequence plus the tool result. A request for an unavailable
// capability, or a second tool request, ends in the fixed fallback reply.
func (s *chatService) runToolRoundTrip(
	ctx context.Context,
	persona *entity.Persona,
	scope string,
	messages []llm.Message,
	call *llm.ToolCall,
) (reply string, toolUsed string, err error) {
	if !persona.HasTool(call.Name) || !s.registry.Has(call.Name) {
		s.logger.Warn("ChatService", "model requested unavailable tool", map[string]interface{}{
			"persona": persona.Name,
			"tool":    call.Name,
			"error":   fmt.Errorf("%w: %s", apperror.ErrUnknownTool, call.Name).Error(),
		})
		return toolFallbackReply, "", nil
	}

	args := call.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}
	args["scope"] = scope

	result, err := s.registry.Execute(ctx, call.Name, args)
	if err != nil {
		if errors.Is(err, apperror.ErrUnknownTool) {
			return toolFallbackReply, "", nil
		}
		return "", "", err
	}

	// Tool result goes onto the original sequence; the second call offers no
	// tools, so the model has to answer.
	followUp := append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf("Result of %s:\n%s", call.Name, result),
	})

	second, err := s.complete(ctx, followUp)
	if err != nil {
		return "", "", err
	}

	reply = second.Text
	if second.IsToolCall() && reply == "" {
		s.logger.Warn("ChatService", "model requested a second tool, ignoring", map[string]interface{}{
			"persona": persona.Name,
			"tool":    second.ToolCall.Name,
		})
		reply = toolFallbackReply
	}
	return reply, call.Name, nil
}

// complete wraps every model call in a bounded timeout and retries transient
// provider failures with a linear backoff.
func (s *chatService) complete(ctx context.Context, messages []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	options = append(options, llm.WithTemperature(s.opts.Temperature))

	var lastErr error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			s.logger.Warn("ChatService", "retrying model call", map[string]interface{}{
				"attempt": attempt,
				"error":   lastErr.Error(),
			})
		}

		callCtx := ctx
		cancel := func() {}
		if s.opts.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		}
		completion, err := s.llmProvider.Chat(callCtx, messages, options...)
		cancel()
		if err == nil {
			return completion, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (s *chatService) retrieve(ctx context.Context, scope, query string) ([]string, error) {
	idx, err := s.indexes.For(scope)
	if err != nil {
		return nil, err
	}
	return retriever.New(idx).Retrieve(ctx, query, s.opts.TopK)
}

// historyFor picks the durable or session-scoped store by the persona's
// memory flag.
func (s *chatService) historyFor(persona *entity.Persona) contract.HistoryRepository {
	if persona.MemoryEnabled {
		return s.durableHistory
	}
	return s.sessionHistory
}

func (s *chatService) scopeFor(persona *entity.Persona) string {
	if s.opts.IndexScope == "persona" {
		return persona.Name
	}
	return index.SharedScope
}

func (s *chatService) logPromptTokens(personaName string, messages []llm.Message) {
	if s.tokenizer == nil {
		return
	}
	total := 0
	for _, m := range messages {
		total += len(s.tokenizer.Encode(m.Content, nil, nil))
	}
	s.logger.Debug("ChatService", "prompt assembled", map[string]interface{}{
		"persona":       personaName,
		"messages":      len(messages),
		"prompt_tokens": total,
	})
}

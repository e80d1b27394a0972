package prompt

import (
	"strings"
	"testing"

	"agentclone-be/internal/entity"
	"agentclone-be/pkg/llm"
)

func testPersona() *entity.Persona {
	return &entity.Persona{
		Name:             "Ada",
		Type:             "Research Assistant",
		SourceType:       "File",
		Source:           "papers.txt",
		ShortDescription: "Expert in distributed systems literature.",
		ToolsEnabled:     []string{"retrieve_documents"},
		MemoryEnabled:    true,
	}
}

func TestAssemble_LayerOrdering(t *testing.T) {
	retrieved := []string{"passage one", "passage two"}
	history := []entity.Turn{
		{Input: "Hi", Output: "Hello!"},
	}

	tests := []struct {
		name      string
		retrieved []string
		history   []entity.Turn
		wantRoles []string
	}{
		{
			name:      "persona and input only",
			wantRoles: []string{llm.RoleSystem, llm.RoleUser},
		},
		{
			name:      "with retrieved",
			retrieved: retrieved,
			wantRoles: []string{llm.RoleSystem, llm.RoleSystem, llm.RoleUser},
		},
		{
			name:      "with history",
			history:   history,
			wantRoles: []string{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant, llm.RoleUser},
		},
		{
			name:      "with retrieved and history",
			retrieved: retrieved,
			history:   history,
			wantRoles: []string{llm.RoleSystem, llm.RoleSystem, llm.RoleUser, llm.RoleAssistant, llm.RoleUser},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := Assemble(testPersona(), "new question", tt.retrieved, tt.history)

			if len(messages) != len(tt.wantRoles) {
				t.Fatalf("got %d messages, want %d", len(messages), len(tt.wantRoles))
			}
			for i, role := range tt.wantRoles {
				if messages[i].Role != role {
					t.Errorf("message %d role = %q, want %q", i, messages[i].Role, role)
				}
			}

			last := messages[len(messages)-1]
			if last.Role != llm.RoleUser || last.Content != "new question" {
				t.Errorf("trailing message = %+v, want the new user input", last)
			}
		})
	}
}

func TestAssemble_TwoTurnConversation(t *testing.T) {
	history := []entity.Turn{
		{Input: "Hi", Output: "Hello!"},
	}

	messages := Assemble(testPersona(), "How are you?", nil, history)

	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(messages))
	}
	if messages[1].Role != llm.RoleUser || messages[1].Content != "Hi" {
		t.Errorf("turn-1 user message = %+v", messages[1])
	}
	if messages[2].Role != llm.RoleAssistant || messages[2].Content != "Hello!" {
		t.Errorf("turn-1 assistant message = %+v", messages[2])
	}
	if messages[3].Role != llm.RoleUser || messages[3].Content != "How are you?" {
		t.Errorf("turn-2 user message = %+v", messages[3])
	}
}

func TestAssemble_ReferenceMaterialCappedAtTwo(t *testing.T) {
	retrieved := []string{"first passage", "second passage", "third passage"}

	messages := Assemble(testPersona(), "question", retrieved, nil)

	reference := messages[1].Content
	if !strings.Contains(reference, "first passage") || !strings.Contains(reference, "second passage") {
		t.Errorf("reference message misses the first two passages: %q", reference)
	}
	if strings.Contains(reference, "third passage") {
		t.Errorf("reference message must not include passages beyond %d: %q", MaxReferencePassages, reference)
	}
}

func TestAssemble_PersonaSystemMessage(t *testing.T) {
	persona := testPersona()
	messages := Assemble(persona, "question", nil, nil)

	system := messages[0].Content
	for _, want := range []string{"Ada", "Research Assistant", "papers.txt", "retrieve_documents", "with memory"} {
		if !strings.Contains(system, want) {
			t.Errorf("system message missing %q: %q", want, system)
		}
	}
}

func TestAssemble_AudienceGuardForChildDomains(t *testing.T) {
	persona := testPersona()
	persona.Type = "Bedtime Storyteller"

	messages := Assemble(persona, "tell me a story", nil, nil)
	if !strings.Contains(messages[0].Content, "age-appropriate") {
		t.Error("child-facing persona should carry the audience-appropriateness instruction")
	}

	neutral := Assemble(testPersona(), "question", nil, nil)
	if strings.Contains(neutral[0].Content, "age-appropriate") {
		t.Error("neutral persona should not carry the audience-appropriateness instruction")
	}
}

package prompt

import (
	"strings"

	"agentclone-be/internal/entity"
	"agentclone-be/pkg/llm"
)

// MaxReferencePassages caps how much retrieved context enters the prompt.
const MaxReferencePassages = 2

var audienceKeywords = []string{"child", "children", "kid", "kids", "bedtime", "story", "stories"}

// Assemble composes the message sequence for one turn. Layering is strict:
// persona system message, then reference material (if any), then prior turns
// in chronological order, then exactly one trailing user message. The model
// must see reference material before history and history before the new
// input, so this ordering is a correctness invariant, not a style choice.
func Assemble(persona *entity.Persona, userInput string, retrieved []string, history []entity.Turn) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemPrompt(persona)},
	}

	if len(retrieved) > 0 {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: buildReferenceMaterial(retrieved),
		})
	}

	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.Input},
			llm.Message{Role: llm.RoleAssistant, Content: turn.Output},
		)
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: userInput})
}

func buildSystemPrompt(persona *entity.Persona) string {
	var sb strings.Builder

	sb.WriteString("You are ")
	sb.WriteString(persona.Name)
	sb.WriteString(", a ")
	sb.WriteString(persona.Type)
	if persona.SourceType != "" && persona.Source != "" {
		sb.WriteString(" using ")
		sb.WriteString(persona.SourceType)
		sb.WriteString(" (")
		sb.WriteString(persona.Source)
		sb.WriteString(")")
	}
	sb.WriteString(".\n")

	if persona.ShortDescription != "" {
		sb.WriteString("Expertise: ")
		sb.WriteString(persona.ShortDescription)
		sb.WriteString("\n")
	}
	if persona.Tone != "" {
		sb.WriteString("Tone: ")
		sb.WriteString(persona.Tone)
		sb.WriteString("\n")
	}

	if len(persona.ToolsEnabled) > 0 {
		sb.WriteString("Tools enabled: ")
		sb.WriteString(strings.Join(persona.ToolsEnabled, ", "))
	} else {
		sb.WriteString("Tools enabled: no extra tools")
	}
	if persona.MemoryEnabled {
		sb.WriteString(", with memory.")
	} else {
		sb.WriteString(", without memory.")
	}

	if len(persona.KnowledgeSources) > 0 {
		sb.WriteString("\nAdditional knowledge sources: ")
		sb.WriteString(strings.Join(persona.KnowledgeSources, "; "))
	}

	if needsAudienceGuard(persona) {
		sb.WriteString("\nAll content must be age-appropriate and suitable for a young audience.")
	}

	return sb.String()
}

func buildReferenceMaterial(retrieved []string) string {
	if len(retrieved) > MaxReferencePassages {
		retrieved = retrieved[:MaxReferencePassages]
	}

	var sb strings.Builder
	sb.WriteString("Reference material, use it to ground your answer:\n")
	for _, passage := range retrieved {
		sb.WriteString("\n")
		sb.WriteString(passage)
		sb.WriteString("\n")
	}
	return sb.String()
}

func needsAudienceGuard(persona *entity.Persona) bool {
	domain := strings.ToLower(persona.Type + " " + persona.ShortDescription)
	for _, kw := range audienceKeywords {
		if strings.Contains(domain, kw) {
			return true
		}
	}
	return false
}

package skillbase

import (
	"fmt"
	"strings"
)

// Section names. Stable; they key per-tab error state in the console UI.
type SectionName string

const (
	SectionContext       SectionName = "context"
	SectionFlow          SectionName = "flow"
	SectionAgent         SectionName = "agent"
	SectionTools         SectionName = "tools"
	SectionKnowledgeBase SectionName = "knowledge_base"
)

// SectionNames in document order.
var SectionNames = []SectionName{
	SectionContext,
	SectionFlow,
	SectionAgent,
	SectionTools,
	SectionKnowledgeBase,
}

// FieldError pinpoints one failing field inside one section. Validation never
// mutates the document and never aborts on the first failure; consumers get
// the full list so a tabbed editor can mark every offending control at once.
type FieldError struct {
	Section SectionName `json:"section"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Message)
}

// Call duration bounds in seconds.
const (
	MinCallDurationSeconds = 30
	MaxCallDurationSeconds = 3600
)

// SectionState is the explicit completeness state of one section.
type SectionState int

const (
	SectionMissing SectionState = iota
	SectionDraft
	SectionValid
)

func (s SectionState) String() string {
	switch s {
	case SectionMissing:
		return "missing"
	case SectionDraft:
		return "draft"
	case SectionValid:
		return "valid"
	default:
		return "unknown"
	}
}

func (s *ContextSection) validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(s.Role) == "" {
		errs = append(errs, FieldError{SectionContext, "role", "role is required"})
	}
	if strings.TrimSpace(s.Style) == "" {
		errs = append(errs, FieldError{SectionContext, "style", "style is required"})
	}
	if strings.TrimSpace(s.Language) == "" {
		errs = append(errs, FieldError{SectionContext, "language", "language is required"})
	}
	if strings.TrimSpace(s.VoiceID) == "" {
		errs = append(errs, FieldError{SectionContext, "voice_id", "voice_id is required"})
	}
	if s.MaxCallDurationSeconds < MinCallDurationSeconds || s.MaxCallDurationSeconds > MaxCallDurationSeconds {
		errs = append(errs, FieldError{SectionContext, "max_call_duration",
			fmt.Sprintf("max_call_duration must be between %d and %d seconds, got %d",
				MinCallDurationSeconds, MaxCallDurationSeconds, s.MaxCallDurationSeconds)})
	}
	return errs
}

func (s *FlowSection) validate() []FieldError {
	var errs []FieldError
	if len(s.GreetingPhrases) == 0 {
		errs = append(errs, FieldError{SectionFlow, "greeting_phrases", "at least one greeting phrase is required"})
	}
	for i, p := range s.GreetingPhrases {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, FieldError{SectionFlow, fmt.Sprintf("greeting_phrases[%d]", i), "greeting phrase must not be empty"})
		}
	}
	if len(s.ConversationPlan) == 0 {
		errs = append(errs, FieldError{SectionFlow, "conversation_plan", "at least one conversation step is required"})
	}
	for i, p := range s.ConversationPlan {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, FieldError{SectionFlow, fmt.Sprintf("conversation_plan[%d]", i), "conversation step must not be empty"})
		}
	}
	return errs
}

func (s *AgentSection) validate() []FieldError {
	var errs []FieldError
	for i, f := range s.LeadTransferFields {
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, FieldError{SectionAgent, fmt.Sprintf("lead_transfer_fields[%d].name", i), "field name is required"})
		}
		if strings.TrimSpace(f.Instruction) == "" {
			errs = append(errs, FieldError{SectionAgent, fmt.Sprintf("lead_transfer_fields[%d].instruction", i), "collection instruction is required"})
		}
	}
	errs = append(errs, s.ClosingMessage.validate()...)
	return errs
}

// validate checks only the payload the tag selects. The inactive payload is
// allowed to be stale or absent.
func (m ClosingMessage) validate() []FieldError {
	switch m.Type {
	case ClosingLLMPrompt:
		if strings.TrimSpace(m.Prompt) == "" {
			return []FieldError{{SectionAgent, "closing_message.prompt", "prompt is required for llm_prompt closing messages"}}
		}
	case ClosingStaticTemplate:
		if strings.TrimSpace(m.Template) == "" {
			return []FieldError{{SectionAgent, "closing_message.template", "template is required for static_template closing messages"}}
		}
	default:
		return []FieldError{{SectionAgent, "closing_message.type",
			fmt.Sprintf("type must be %q or %q, got %q", ClosingLLMPrompt, ClosingStaticTemplate, m.Type)}}
	}
	return nil
}

func (s ToolsSection) validate() []FieldError {
	known := make(map[ToolName]struct{}, len(KnownToolNames))
	for _, n := range KnownToolNames {
		known[n] = struct{}{}
	}
	var errs []FieldError
	for i, t := range s {
		if _, ok := known[t.Name]; !ok {
			errs = append(errs, FieldError{SectionTools, fmt.Sprintf("tools[%d].name", i),
				fmt.Sprintf("unknown tool %q", t.Name)})
		}
	}
	return errs
}

func (s *KnowledgeBaseSection) validate() []FieldError {
	var errs []FieldError
	for i, id := range s.DocumentIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, FieldError{SectionKnowledgeBase, fmt.Sprintf("document_ids[%d]", i), "document id must not be empty"})
		}
	}
	return errs
}

// ValidateSection validates one section in isolation. A missing section fails
// with a single section-scoped error; an unknown name fails likewise.
func (c *Config) ValidateSection(name SectionName) []FieldError {
	missing := func() []FieldError {
		return []FieldError{{name, "", "section is missing"}}
	}
	switch name {
	case SectionContext:
		if c.Context == nil {
			return missing()
		}
		return c.Context.validate()
	case SectionFlow:
		if c.Flow == nil {
			return missing()
		}
		return c.Flow.validate()
	case SectionAgent:
		if c.Agent == nil {
			return missing()
		}
		return c.Agent.validate()
	case SectionTools:
		if c.Tools == nil {
			return missing()
		}
		return c.Tools.validate()
	case SectionKnowledgeBase:
		if c.KnowledgeBase == nil {
			return missing()
		}
		return c.KnowledgeBase.validate()
	default:
		return []FieldError{{name, "", "unknown section"}}
	}
}

// Validate is the commit check: the logical AND of all five sections. Editing
// code must not call this on every keystroke; partial documents are legal
// until an activation is attempted.
func (c *Config) Validate() []FieldError {
	var errs []FieldError
	for _, name := range SectionNames {
		errs = append(errs, c.ValidateSection(name)...)
	}
	return errs
}

// Complete reports whether every section passes validation.
func (c *Config) Complete() bool {
	return len(c.Validate()) == 0
}

// SectionState classifies a section as missing, draft (present but failing
// validation) or valid.
func (c *Config) SectionState(name SectionName) SectionState {
	errs := c.ValidateSection(name)
	if len(errs) == 1 && errs[0].Field == "" && errs[0].Message == "section is missing" {
		return SectionMissing
	}
	if len(errs) > 0 {
		return SectionDraft
	}
	return SectionValid
}

// CanStartCampaign reports whether a campaign may be started against this
// skillbase, per the draft-skillbase invariant. The backend re-checks this;
// the console uses it to fail fast before the network call.
func (sb *Skillbase) CanStartCampaign() []FieldError {
	if sb.Config == nil {
		return []FieldError{{SectionContext, "", "skillbase has no configuration"}}
	}
	return sb.Config.Validate()
}

package skillbase

import "time"

// Skillbase is a named, versioned agent definition.
//
// Tenancy invariant: CompanyID is required on every row (owned server-side).
//
// A Skillbase MAY exist without a configuration (draft). Campaigns must not be
// started against a Skillbase whose configuration is absent or incomplete; the
// backend enforces this, the console pre-checks it before issuing the request.
type Skillbase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`

	KnowledgeBaseID string `json:"knowledge_base_id,omitempty"`

	// Config is absent for draft skillbases.
	Config *Config `json:"config,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Config is the versioned configuration document attached to a Skillbase.
// Each section is independently editable and independently validated; a nil
// section means "not written yet", which is a legal in-progress state.
//
// Version is advisory: the backend increments it on every replace and the
// console sends snapshot version + 1 on save. It is not a compare-and-swap
// token.
type Config struct {
	Version int `json:"version"`

	Context       *ContextSection       `json:"context,omitempty"`
	Flow          *FlowSection          `json:"flow,omitempty"`
	Agent         *AgentSection         `json:"agent,omitempty"`
	Tools         *ToolsSection         `json:"tools,omitempty"`
	KnowledgeBase *KnowledgeBaseSection `json:"knowledge_base,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ContextSection describes the agent persona.
type ContextSection struct {
	Role  string `json:"role"`
	Style string `json:"style"`

	// Rules and Facts are ordered lists of free text; order is preserved.
	Rules []string `json:"rules"`
	Facts []string `json:"facts"`

	QualificationCriteria []string `json:"qualification_criteria"`

	Language string `json:"language"`
	VoiceID  string `json:"voice_id"`

	// MaxCallDurationSeconds bounds a single call, 30..3600.
	MaxCallDurationSeconds int `json:"max_call_duration"`
}

// FlowSection is the conversation script. ConversationPlan steps are
// sequential; their order is semantically meaningful and must survive every
// edit/save/reload round trip.
type FlowSection struct {
	GreetingPhrases  []string `json:"greeting_phrases"`
	ConversationPlan []string `json:"conversation_plan"`
}

// AgentSection describes lead handoff behavior.
type AgentSection struct {
	LeadTransferFields []TransferField `json:"lead_transfer_fields"`
	ClosingMessage     ClosingMessage  `json:"closing_message"`
}

// TransferField is a named datum the agent collects before handing a lead off.
type TransferField struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
}

type ClosingMessageType string

const (
	ClosingLLMPrompt      ClosingMessageType = "llm_prompt"
	ClosingStaticTemplate ClosingMessageType = "static_template"
)

// ClosingMessage is a discriminated union on Type. Only the payload matching
// the tag is meaningful; the inactive field may be stale or absent and is
// never validated. Use Payload instead of reading Prompt/Template directly.
type ClosingMessage struct {
	Type     ClosingMessageType `json:"type"`
	Prompt   string             `json:"prompt,omitempty"`
	Template string             `json:"template,omitempty"`
}

// Payload returns the active payload for the tag.
func (m ClosingMessage) Payload() (string, bool) {
	switch m.Type {
	case ClosingLLMPrompt:
		return m.Prompt, true
	case ClosingStaticTemplate:
		return m.Template, true
	default:
		return "", false
	}
}

type ToolName string

const (
	ToolCallTransfer       ToolName = "call_transfer"
	ToolDTMF               ToolName = "dtmf"
	ToolEndCall            ToolName = "end_call"
	ToolKnowledgeSearch    ToolName = "knowledge_search"
	ToolVoicemailDetection ToolName = "voicemail_detection"
)

// KnownToolNames lists every tool the platform understands.
var KnownToolNames = []ToolName{
	ToolCallTransfer,
	ToolDTMF,
	ToolEndCall,
	ToolKnowledgeSearch,
	ToolVoicemailDetection,
}

// ToolSetting toggles one capability. Config carries tool-specific options
// the console passes through opaquely.
type ToolSetting struct {
	Name    ToolName       `json:"name"`
	Enabled bool           `json:"enabled"`
	Config  map[string]any `json:"config,omitempty"`
}

// ToolsSection is an ordered list of capability toggles. Duplicate names are
// tolerated at the structure level; Tool resolves the last entry so duplicate
// precedence is at least deterministic.
type ToolsSection []ToolSetting

// Tool returns the effective setting for a name.
func (s ToolsSection) Tool(name ToolName) (ToolSetting, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i], true
		}
	}
	return ToolSetting{}, false
}

// DuplicateNames reports tool names that appear more than once, in first
// occurrence order. A data-quality signal, not a validation failure.
func (s ToolsSection) DuplicateNames() []ToolName {
	seen := make(map[ToolName]int, len(s))
	var order []ToolName
	for _, t := range s {
		seen[t.Name]++
		if seen[t.Name] == 2 {
			order = append(order, t.Name)
		}
	}
	return order
}

// KnowledgeBaseSection attaches retrieval documents. Order is preserved;
// uniqueness is not enforced at this layer.
type KnowledgeBaseSection struct {
	DocumentIDs []string `json:"document_ids"`
}

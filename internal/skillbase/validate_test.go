package skillbase

import (
	"strings"
	"testing"
)

func validContext() *ContextSection {
	return &ContextSection{
		Role:                   "sales agent",
		Style:                  "friendly",
		Rules:                  []string{"never interrupt"},
		Facts:                  []string{"office hours 9-18"},
		Language:               "en",
		VoiceID:                "voice-1",
		MaxCallDurationSeconds: 300,
	}
}

func validConfig() *Config {
	return &Config{
		Version: 1,
		Context: validContext(),
		Flow: &FlowSection{
			GreetingPhrases:  []string{"Hello!"},
			ConversationPlan: []string{"introduce", "qualify", "close"},
		},
		Agent: &AgentSection{
			LeadTransferFields: []TransferField{{Name: "budget", Instruction: "ask for the budget"}},
			ClosingMessage:     ClosingMessage{Type: ClosingStaticTemplate, Template: "Thanks!"},
		},
		Tools:         &ToolsSection{{Name: ToolEndCall, Enabled: true}},
		KnowledgeBase: &KnowledgeBaseSection{DocumentIDs: []string{"doc-1"}},
	}
}

func TestValidate_CompleteConfigPasses(t *testing.T) {
	cfg := validConfig()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !cfg.Complete() {
		t.Fatalf("expected complete")
	}
}

func TestContext_CallDurationBounds(t *testing.T) {
	cases := []struct {
		duration int
		ok       bool
	}{
		{20, false},
		{30, true},
		{300, true},
		{3600, true},
		{4000, false},
	}
	for _, tc := range cases {
		s := validContext()
		s.MaxCallDurationSeconds = tc.duration
		errs := s.validate()
		if tc.ok && len(errs) != 0 {
			t.Fatalf("duration %d: expected valid, got %v", tc.duration, errs)
		}
		if !tc.ok {
			if len(errs) != 1 || errs[0].Field != "max_call_duration" {
				t.Fatalf("duration %d: expected single max_call_duration error, got %v", tc.duration, errs)
			}
		}
	}
}

func TestClosingMessage_DiscriminatedByTag(t *testing.T) {
	empty := ClosingMessage{Type: ClosingLLMPrompt, Prompt: ""}
	if errs := empty.validate(); len(errs) != 1 || errs[0].Field != "closing_message.prompt" {
		t.Fatalf("expected prompt error, got %v", errs)
	}

	// Prompt absent is fine when the tag selects the template.
	tmpl := ClosingMessage{Type: ClosingStaticTemplate, Template: "Thanks!"}
	if errs := tmpl.validate(); len(errs) != 0 {
		t.Fatalf("expected valid, got %v", errs)
	}

	// Stale inactive payload is ignored.
	stale := ClosingMessage{Type: ClosingStaticTemplate, Template: "Bye", Prompt: "old prompt"}
	if errs := stale.validate(); len(errs) != 0 {
		t.Fatalf("expected stale prompt ignored, got %v", errs)
	}

	bad := ClosingMessage{Type: "shout"}
	if errs := bad.validate(); len(errs) != 1 || errs[0].Field != "closing_message.type" {
		t.Fatalf("expected type error, got %v", errs)
	}
}

func TestClosingMessage_PayloadFollowsTag(t *testing.T) {
	m := ClosingMessage{Type: ClosingLLMPrompt, Prompt: "wrap up politely", Template: "stale"}
	got, ok := m.Payload()
	if !ok || got != "wrap up politely" {
		t.Fatalf("expected prompt payload, got %q ok=%v", got, ok)
	}
}

func TestValidateSection_IsolatedPerSection(t *testing.T) {
	cfg := validConfig()
	cfg.Flow.GreetingPhrases = nil

	// Only the flow tab goes red.
	if errs := cfg.ValidateSection(SectionFlow); len(errs) != 1 {
		t.Fatalf("expected one flow error, got %v", errs)
	}
	if errs := cfg.ValidateSection(SectionContext); len(errs) != 0 {
		t.Fatalf("expected context untouched, got %v", errs)
	}

	all := cfg.Validate()
	if len(all) != 1 || all[0].Section != SectionFlow {
		t.Fatalf("expected composite to carry only the flow error, got %v", all)
	}
}

func TestSectionState(t *testing.T) {
	cfg := validConfig()
	cfg.Agent.ClosingMessage.Template = ""
	cfg.Tools = nil

	if st := cfg.SectionState(SectionContext); st != SectionValid {
		t.Fatalf("context: expected valid, got %v", st)
	}
	if st := cfg.SectionState(SectionAgent); st != SectionDraft {
		t.Fatalf("agent: expected draft, got %v", st)
	}
	if st := cfg.SectionState(SectionTools); st != SectionMissing {
		t.Fatalf("tools: expected missing, got %v", st)
	}
	if cfg.Complete() {
		t.Fatalf("expected incomplete")
	}
}

func TestTools_UnknownNameRejected(t *testing.T) {
	s := ToolsSection{{Name: "time_travel", Enabled: true}}
	errs := s.validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "time_travel") {
		t.Fatalf("expected unknown tool error, got %v", errs)
	}
}

func TestTools_DuplicatesToleratedLastWins(t *testing.T) {
	s := ToolsSection{
		{Name: ToolDTMF, Enabled: false},
		{Name: ToolEndCall, Enabled: true},
		{Name: ToolDTMF, Enabled: true},
	}
	if errs := s.validate(); len(errs) != 0 {
		t.Fatalf("duplicates must not fail structural validation, got %v", errs)
	}
	eff, ok := s.Tool(ToolDTMF)
	if !ok || !eff.Enabled {
		t.Fatalf("expected last dtmf entry to win, got %+v ok=%v", eff, ok)
	}
	dups := s.DuplicateNames()
	if len(dups) != 1 || dups[0] != ToolDTMF {
		t.Fatalf("expected dtmf reported once, got %v", dups)
	}
}

func TestCanStartCampaign(t *testing.T) {
	sb := &Skillbase{ID: "sb-1", Name: "outreach", CompanyID: "co-1"}
	if errs := sb.CanStartCampaign(); len(errs) == 0 {
		t.Fatalf("expected draft skillbase to block campaign start")
	}
	sb.Config = validConfig()
	if errs := sb.CanStartCampaign(); len(errs) != 0 {
		t.Fatalf("expected complete config to allow start, got %v", errs)
	}
}

package skillbase

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestConfig_JSONRoundTripPreservesOrder(t *testing.T) {
	in := validConfig()
	in.Flow.ConversationPlan = []string{"a", "b", "c"}
	in.Context.Rules = []string{"r1", "r2", "r3"}
	in.KnowledgeBase.DocumentIDs = []string{"d2", "d1", "d2"}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Config
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(out.Flow.ConversationPlan, []string{"a", "b", "c"}) {
		t.Fatalf("conversation_plan order lost: %v", out.Flow.ConversationPlan)
	}
	if !reflect.DeepEqual(out.Context.Rules, []string{"r1", "r2", "r3"}) {
		t.Fatalf("rules order lost: %v", out.Context.Rules)
	}
	// Duplicates and order both survive; this layer enforces neither uniqueness
	// nor sorting on document ids.
	if !reflect.DeepEqual(out.KnowledgeBase.DocumentIDs, []string{"d2", "d1", "d2"}) {
		t.Fatalf("document_ids changed: %v", out.KnowledgeBase.DocumentIDs)
	}
}

func TestConfig_AbsentSectionsStayAbsent(t *testing.T) {
	in := Config{Version: 3, Context: validContext()}

	raw, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Config
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Flow != nil || out.Agent != nil || out.Tools != nil || out.KnowledgeBase != nil {
		t.Fatalf("expected absent sections to stay nil: %+v", out)
	}
	if out.Version != 3 {
		t.Fatalf("version lost: %d", out.Version)
	}
}

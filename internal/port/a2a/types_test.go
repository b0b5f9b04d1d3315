package a2a

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPartJSONRoundTrip(t *testing.T) {
	msg := Message{
		Role: "user",
		Parts: []Part{
			TextPart("hello"),
			{Kind: PartKindData, Data: json.RawMessage(`{"answer":42}`)},
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Role != "user" || len(decoded.Parts) != 2 {
		t.Fatalf("unexpected message: %+v", decoded)
	}
	if decoded.Parts[0].Kind != PartKindText || decoded.Parts[0].Text != "hello" {
		t.Errorf("unexpected text part: %+v", decoded.Parts[0])
	}
	if decoded.Parts[1].Kind != PartKindData || string(decoded.Parts[1].Data) != `{"answer":42}` {
		t.Errorf("unexpected data part: %+v", decoded.Parts[1])
	}
}

func TestPartUnmarshalRejectsUnknownKind(t *testing.T) {
	var p Part
	err := json.Unmarshal([]byte(`{"kind":"file","uri":"x"}`), &p)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "unknown part kind") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPartMarshalRejectsZeroKind(t *testing.T) {
	if _, err := json.Marshal(Part{}); err == nil {
		t.Fatal("expected error for part without kind")
	}
}

func TestDataPart(t *testing.T) {
	p, err := DataPart(map[string]int{"n": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != PartKindData || string(p.Data) != `{"n":7}` {
		t.Fatalf("unexpected part: %+v", p)
	}
}

func TestTaskClone(t *testing.T) {
	orig := &Task{
		ID: "t-1",
		Status: TaskStatus{
			State: TaskStateCompleted,
			Message: &Message{
				Role:  "assistant",
				Parts: []Part{TextPart("csv"), {Kind: PartKindData, Data: json.RawMessage(`{"a":1}`)}},
			},
			Timestamp: "2026-01-02T03:04:05Z",
		},
	}

	clone := orig.Clone()

	clone.Status.State = TaskStateFailed
	clone.Status.Message.Parts[0].Text = "mutated"
	clone.Status.Message.Parts[1].Data[2] = 'x'

	if orig.Status.State != TaskStateCompleted {
		t.Error("clone mutation leaked into original state")
	}
	if orig.Status.Message.Parts[0].Text != "csv" {
		t.Error("clone mutation leaked into original text part")
	}
	if string(orig.Status.Message.Parts[1].Data) != `{"a":1}` {
		t.Error("clone mutation leaked into original data part")
	}
}

func TestCloneNil(t *testing.T) {
	var task *Task
	if task.Clone() != nil {
		t.Error("nil task should clone to nil")
	}
	var msg *Message
	if msg.Clone() != nil {
		t.Error("nil message should clone to nil")
	}
}

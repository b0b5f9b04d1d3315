// Package a2a implements the agent-to-agent protocol surface of POForge:
// wire types, the agent card, and the HTTP endpoints.
package a2a

import (
	"encoding/json"
	"fmt"
)

// TaskState enumerates the lifecycle states of a task. All six states are
// part of the protocol surface; submission processing only ever assigns
// TaskStateCompleted or TaskStateFailed.
type TaskState string

const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
)

// PartKind discriminates the two payload variants of a Part.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindData PartKind = "data"
)

// Part is one unit of envelope payload: either free text or structured data.
// The set of kinds is closed; unmarshalling rejects anything else.
type Part struct {
	Kind PartKind
	Text string
	Data json.RawMessage
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Kind: PartKindText, Text: text}
}

// DataPart builds a data part from any JSON-marshallable value.
func DataPart(v any) (Part, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Part{}, fmt.Errorf("marshal data part: %w", err)
	}
	return Part{Kind: PartKindData, Data: data}, nil
}

type partWire struct {
	Kind PartKind        `json:"kind"`
	Text string          `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes the part with only the field matching its kind.
func (p Part) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PartKindText:
		return json.Marshal(partWire{Kind: PartKindText, Text: p.Text})
	case PartKindData:
		return json.Marshal(partWire{Kind: PartKindData, Data: p.Data})
	default:
		return nil, fmt.Errorf("unknown part kind %q", p.Kind)
	}
}

// UnmarshalJSON decodes a part, rejecting unknown kinds.
func (p *Part) UnmarshalJSON(b []byte) error {
	var w partWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Kind {
	case PartKindText:
		*p = Part{Kind: PartKindText, Text: w.Text}
	case PartKindData:
		*p = Part{Kind: PartKindData, Data: w.Data}
	default:
		return fmt.Errorf("unknown part kind %q", w.Kind)
	}
	return nil
}

// Clone returns a deep copy of the part.
func (p Part) Clone() Part {
	out := Part{Kind: p.Kind, Text: p.Text}
	if p.Data != nil {
		out.Data = make(json.RawMessage, len(p.Data))
		copy(out.Data, p.Data)
	}
	return out
}

// Message is the envelope exchanged between agents: a role tag and an
// ordered sequence of parts.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	out := &Message{Role: m.Role}
	if m.Parts != nil {
		out.Parts = make([]Part, len(m.Parts))
		for i, p := range m.Parts {
			out.Parts[i] = p.Clone()
		}
	}
	return out
}

// TaskStatus is the current state of a task plus the response envelope
// produced by the transition into that state.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// Artifact is an output attachment of a task. POForge never produces
// artifacts; the field exists for protocol compatibility.
type Artifact struct {
	Name  string `json:"name,omitempty"`
	Parts []Part `json:"parts"`
}

// Task is the stored unit of work representing one submission's lifecycle
// and result.
type Task struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId,omitempty"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Clone returns a deep copy of the task. The store hands out clones so
// callers never hold references into its internal state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := &Task{
		ID:        t.ID,
		SessionID: t.SessionID,
		Status: TaskStatus{
			State:     t.Status.State,
			Message:   t.Status.Message.Clone(),
			Timestamp: t.Status.Timestamp,
		},
	}
	if t.Artifacts != nil {
		out.Artifacts = make([]Artifact, len(t.Artifacts))
		for i, a := range t.Artifacts {
			parts := make([]Part, len(a.Parts))
			for j, p := range a.Parts {
				parts[j] = p.Clone()
			}
			out.Artifacts[i] = Artifact{Name: a.Name, Parts: parts}
		}
	}
	return out
}

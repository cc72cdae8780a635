// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

// EventKind discriminates the events a run emits.
type EventKind string

const (
	// EventBegin opens the run with a one-line summary.
	EventBegin EventKind = "process_begin"

	// EventLog is an intermediate progress note, optionally with
	// structured data.
	EventLog EventKind = "process_log"

	// EventArtifact announces a result artifact.
	EventArtifact EventKind = "artifact"

	// EventReply is a message addressed directly to the caller. Every
	// run ends with exactly one reply.
	EventReply EventKind = "direct_reply"
)

// Artifact describes a result artifact: where it lives and what it holds.
type Artifact struct {
	// Mimetype of the artifact content (e.g. "text/markdown").
	Mimetype string `json:"mimetype" yaml:"mimetype"`

	// Description is a human-readable one-liner.
	Description string `json:"description" yaml:"description"`

	// URIs point at the artifact content. A search artifact carries one
	// URI; a detail artifact carries one per retrieved record.
	URIs []string `json:"uris" yaml:"uris"`

	// Metadata holds structured facts about the artifact (genus,
	// species, counts, source URLs).
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// Event is one element of a run's response stream.
type Event struct {
	Kind EventKind `json:"kind" yaml:"kind"`

	// Text is the begin summary, log line, or reply text. Empty for
	// artifact events.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Data carries structured fields attached to log and reply events.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	// Artifact is set only for artifact events.
	Artifact *Artifact `json:"artifact,omitempty" yaml:"artifact,omitempty"`
}

// Responder receives the event stream of one run, in emission order.
// Calls arrive from a single goroutine.
type Responder interface {
	Begin(summary string)
	Log(text string, data map[string]any)
	Artifact(a Artifact)
	Reply(text string, data map[string]any)
}

// Recorder is a Responder that collects events in order. Used by tests
// and by hosts that forward a finished stream wholesale.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Begin(summary string) {
	r.Events = append(r.Events, Event{Kind: EventBegin, Text: summary})
}

func (r *Recorder) Log(text string, data map[string]any) {
	r.Events = append(r.Events, Event{Kind: EventLog, Text: text, Data: data})
}

func (r *Recorder) Artifact(a Artifact) {
	r.Events = append(r.Events, Event{Kind: EventArtifact, Artifact: &a})
}

func (r *Recorder) Reply(text string, data map[string]any) {
	r.Events = append(r.Events, Event{Kind: EventReply, Text: text, Data: data})
}

// Replies returns the direct replies in emission order.
func (r *Recorder) Replies() []Event {
	var replies []Event
	for _, e := range r.Events {
		if e.Kind == EventReply {
			replies = append(replies, e)
		}
	}
	return replies
}

// Artifacts returns the artifact events in emission order.
func (r *Recorder) Artifacts() []Artifact {
	var artifacts []Artifact
	for _, e := range r.Events {
		if e.Kind == EventArtifact && e.Artifact != nil {
			artifacts = append(artifacts, *e.Artifact)
		}
	}
	return artifacts
}

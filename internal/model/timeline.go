package model

type NodeType string

const (
	NodeTypeObservation NodeType = "Observation"
	NodeTypeAction      NodeType = "Action"
)

func (t NodeType) Valid() bool {
	return t == NodeTypeObservation || t == NodeTypeAction
}

// LogicNode is a causal annotation attached to a communication event:
// either a problem surfaced (Observation) or a corrective step proposed
// in response (Action). Category is an open string used only for grouping
// downstream; new categories appear as new negotiations are analyzed, so
// no exhaustiveness is enforced on it.
type LogicNode struct {
	NodeType    NodeType `json:"node_type"`
	Category    string   `json:"type"`
	Description string   `json:"description"`
	Citation    string   `json:"citation,omitempty"` // verbatim quote, non-empty when present
}

// TimelineEvent is one communication event in a negotiation. Date and Time
// are opaque display strings and are passed through unparsed.
type TimelineEvent struct {
	Step        int        `json:"step"`
	Date        string     `json:"date"`
	Time        string     `json:"time,omitempty"`
	Sender      string     `json:"sender"`
	SenderEmail string     `json:"sender_email,omitempty"`
	Summary     string     `json:"summary"`
	LogicNode   *LogicNode `json:"logic_node,omitempty"`
}

// Timeline is the causally-linked narrative of one project's negotiation,
// ordered by Step ascending. Step gaps are tolerated; position in Events is
// authoritative over the step value.
type Timeline struct {
	Project  string          `json:"project"`
	Customer string          `json:"customer,omitempty"`
	Events   []TimelineEvent `json:"timeline"`
}

// Package linkstate implements the shareable view-state codec used by the
// link-building layer: a URL-safe token that round-trips exactly to the view
// state it was built from.
package linkstate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode wraps every token rejection so callers can distinguish a bad
// token from other failures.
var ErrDecode = errors.New("linkstate: invalid token")

// ViewState is the shareable slice of UI state. Zero values are meaningful
// (empty filters), so every field is optional on the wire.
type ViewState struct {
	AccountID       string   `json:"account_id,omitempty"`
	Tab             string   `json:"tab,omitempty"`
	GraphID         string   `json:"graph_id,omitempty"`
	MaxHops         int      `json:"max_hops,omitempty"`
	EdgeMinStrength float64  `json:"edge_min_strength,omitempty"`
	ShowWeakEdges   bool     `json:"show_weak_edges,omitempty"`
	CompareWith     []string `json:"compare_with,omitempty"`
}

// Encode serializes the state to JSON and wraps it in unpadded base64url:
// standard base64 with '+' -> '-', '/' -> '_' and trailing '=' stripped.
func Encode(s ViewState) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding view state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode inverts Encode exactly. Any token that is not valid unpadded
// base64url, or whose payload is not a well-formed ViewState object, is
// rejected with an error wrapping ErrDecode; Decode never silently returns a
// wrong object.
func Decode(token string) (ViewState, error) {
	var s ViewState

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return ViewState{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	// Reject trailing garbage after the state object.
	if dec.More() {
		return ViewState{}, fmt.Errorf("%w: trailing data after state object", ErrDecode)
	}

	if s.MaxHops < 0 || s.MaxHops > 3 {
		return ViewState{}, fmt.Errorf("%w: max_hops %d outside [0,3]", ErrDecode, s.MaxHops)
	}
	if s.EdgeMinStrength < 0 || s.EdgeMinStrength > 1 {
		return ViewState{}, fmt.Errorf("%w: edge_min_strength %f outside [0,1]", ErrDecode, s.EdgeMinStrength)
	}

	return s, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package area

import (
	"fmt"
	"strings"
)

// Kind classifies a node. It is set explicitly when the node is inserted and
// is never derived from the node's identity.
type Kind int

const (
	Unclassified Kind = iota
	RiskArea
	EvacuationRoute
	RescueCenter
)

var kindNames = map[Kind]string{
	Unclassified:    "unclassified",
	RiskArea:        "risk_area",
	EvacuationRoute: "evacuation_route",
	RescueCenter:    "rescue_center",
}

// String returns the canonical snake_case name used in area files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind travel as its canonical name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts the canonical names as well as the CamelCase and
// Title_Snake spellings ("RiskArea", "Risk_Area"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	switch normalized {
	case "riskarea":
		return RiskArea, nil
	case "evacuationroute":
		return EvacuationRoute, nil
	case "rescuecenter":
		return RescueCenter, nil
	case "unclassified", "":
		return Unclassified, nil
	default:
		return Unclassified, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// internal/models/card.go
package models

import "reflect"

// WildType is the universal card type that matches any discard constraint.
const WildType = "common"

// CardRef is the {type, card} descriptor clients use for cards. The server
// never interprets the card value beyond equality; clients may send numbers or
// strings, so Card stays loosely typed.
type CardRef struct {
	Type string `json:"type"`
	Card any    `json:"card"`
}

// SameType reports whether both cards share a type.
func (c CardRef) SameType(o CardRef) bool {
	return c.Type == o.Type
}

// SameValue reports whether both card values are equal. Values originate from
// the same client message, so no cross-type coercion is applied.
func (c CardRef) SameValue(o CardRef) bool {
	return reflect.DeepEqual(c.Card, o.Card)
}

// Package id provides opaque token generation helpers.
package id

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const TicketTokenLength = 22

// New generates a random URL-safe token of the given length.
func New(length int) string {
	token, err := nanoid.New(length)
	if err != nil {
		panic("nanoid generation failed: " + err.Error())
	}
	return token
}

// NewTicketToken generates a URL-safe single-use websocket ticket token.
func NewTicketToken() string {
	return New(TicketTokenLength)
}

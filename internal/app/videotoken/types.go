/*
Package videotoken issues the signed room tokens consumed by the ZEGOCLOUD
real-time video SDK.

A token authorizes one user to join (and publish into) one room until its
embedded timestamp. Tokens are stateless: nothing is stored server-side and
expiry is enforced only by the consuming SDK.
*/
package videotoken

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// TokenLifetime is added to the issue time to produce the token timestamp.
	TokenLifetime = 3600 * time.Second

	// DefaultUserName is used when the caller does not provide a display name.
	DefaultUserName = "Anonymous"

	// roomNamePrefix is prepended to the room identifier to build the display room name.
	roomNamePrefix = "Room "
)

// Credentials are the application identifier and shared server secret
// provided by the video platform. They are loaded once at startup.
type Credentials struct {
	AppID        uint32
	ServerSecret string
}

// Valid reports whether both the application identifier and the secret are set.
func (c Credentials) Valid() bool {
	return c.AppID != 0 && c.ServerSecret != ""
}

// Request holds the per-call inputs of Issue.
type Request struct {
	RoomID   string
	UserID   string
	UserName string
}

// Privilege is the privilege map of the token payload.
// Keys follow the SDK convention: 1 is login, 2 is publish.
type Privilege struct {
	Login   int `json:"1"`
	Publish int `json:"2"`
}

// Payload is the object that is serialized and base64 encoded into Token.Payload.
// Field order matters: it fixes the bytes that get signed.
type Payload struct {
	AppID        uint32    `json:"app_id"`
	UserID       string    `json:"user_id"`
	RoomID       string    `json:"room_id"`
	Privilege    Privilege `json:"privilege"`
	StreamIDList []string  `json:"stream_id_list"`
	Payload      string    `json:"payload"`
}

// RoomInfo is the inner JSON document carried as a string in Payload.Payload.
type RoomInfo struct {
	UserName string `json:"user_name"`
	RoomName string `json:"room_name"`
}

// Token is the envelope that is serialized and base64 encoded into the string handed to clients.
type Token struct {
	Signature string `json:"signature"`
	AppID     uint32 `json:"app_id"`
	Nonce     int    `json:"nonce"`
	Timestamp int64  `json:"timestamp"`
	Payload   string `json:"payload"`
}

// ErrConfiguration is returned when the issuer has no usable credentials.
var ErrConfiguration = errors.New("missing Zegocloud credentials")

// ValidationError reports missing required request fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required parameters: %s (roomId and userId are required)", strings.Join(e.Fields, ", "))
}

// SigningError wraps a failure while serializing or signing a token.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return "token signing failed: " + e.Err.Error()
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

package videotoken

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Decoded is the fully unpacked form of an issued token.
type Decoded struct {
	Token    Token
	Payload  Payload
	RoomInfo RoomInfo
}

// Decode unpacks a token string produced by Issue. It checks neither the
// signature nor the timestamp.
func Decode(tokenString string) (*Decoded, error) {
	raw, err := base64.StdEncoding.DecodeString(tokenString)
	if err != nil {
		return nil, fmt.Errorf("decode token envelope: %w", err)
	}

	var d Decoded
	if err := json.Unmarshal(raw, &d.Token); err != nil {
		return nil, fmt.Errorf("parse token envelope: %w", err)
	}

	rawPayload, err := base64.StdEncoding.DecodeString(d.Token.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	if err := json.Unmarshal(rawPayload, &d.Payload); err != nil {
		return nil, fmt.Errorf("parse token payload: %w", err)
	}

	if err := json.Unmarshal([]byte(d.Payload.Payload), &d.RoomInfo); err != nil {
		return nil, fmt.Errorf("parse room info: %w", err)
	}

	return &d, nil
}

package videotoken

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"nexora/internal/pkg/logx"
)

// Issuer produces signed room tokens. It holds read-only credentials and
// is safe for concurrent use.
type Issuer struct {
	creds  Credentials
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used to stamp token expiry.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer constructs an Issuer for the given credentials.
// Missing credentials are not an error here; Issue reports them per call.
func NewIssuer(creds Credentials, opts ...Option) *Issuer {
	i := &Issuer{
		creds:  creds,
		now:    time.Now,
		logger: logx.Logger().With().Str("component", "VideoTokenIssuer").Logger(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Configured reports whether the issuer holds usable credentials.
func (i *Issuer) Configured() bool {
	return i.creds.Valid()
}

// Issue validates the request, then the credentials, and returns the
// base64 encoded token string.
func (i *Issuer) Issue(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var missing []string
	if req.RoomID == "" {
		missing = append(missing, "roomId")
	}
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Fields: missing}
	}

	if !i.creds.Valid() {
		return "", ErrConfiguration
	}

	i.logger.Debug().
		Str("room_id", req.RoomID).
		Str("user_id", req.UserID).
		Msg("Generating video room token.")

	userName := req.UserName
	if userName == "" {
		userName = DefaultUserName
	}

	roomInfo, err := marshalJSON(RoomInfo{
		UserName: userName,
		RoomName: roomNamePrefix + req.RoomID,
	})
	if err != nil {
		return "", &SigningError{Err: err}
	}

	payload, err := marshalJSON(Payload{
		AppID:     i.creds.AppID,
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Privilege: Privilege{Login: 1, Publish: 1},
		Payload:   string(roomInfo),
	})
	if err != nil {
		return "", &SigningError{Err: err}
	}

	expiry := i.now().Add(TokenLifetime).Unix()
	encodedPayload := base64.StdEncoding.EncodeToString(payload)

	signature, err := Sign(i.creds.AppID, expiry, encodedPayload, []byte(i.creds.ServerSecret))
	if err != nil {
		return "", err
	}

	token, err := marshalJSON(Token{
		Signature: signature,
		AppID:     i.creds.AppID,
		Nonce:     0,
		Timestamp: expiry,
		Payload:   encodedPayload,
	})
	if err != nil {
		return "", &SigningError{Err: err}
	}

	return base64.StdEncoding.EncodeToString(token), nil
}

// Sign computes the lowercase hex HMAC-SHA256 of appID, expiry and
// encodedPayload concatenated without delimiters.
func Sign(appID uint32, expiry int64, encodedPayload string, secret []byte) (string, error) {
	mac := hmac.New(sha256.New, secret)

	input := strconv.FormatUint(uint64(appID), 10) + strconv.FormatInt(expiry, 10) + encodedPayload
	if _, err := mac.Write([]byte(input)); err != nil {
		return "", &SigningError{Err: err}
	}

	return hex.EncodeToString(mac.Sum(nil)), nil
}

// marshalJSON serializes v without HTML escaping and without the trailing
// newline added by json.Encoder, so the signed bytes match what browser
// clients produce for the same object.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

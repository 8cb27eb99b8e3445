package auth

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/hex"
    "errors"
    "strconv"
    "strings"
    "time"
)

var (
    ErrTokenFormat = errors.New("invalid token format")
    ErrTokenSig    = errors.New("invalid token signature")
    ErrTokenExp    = errors.New("token expired or not yet valid")
    ErrTokenSID    = errors.New("session id mismatch")
)

// GenerateDriverToken builds the bearer token a session driver presents on
// the WebSocket. Format:
// base64url(session_id + "." + exp_unix + "." + hex(hmac_sha256(secret, session_id+"."+exp)))
func GenerateDriverToken(secret, sessionID string, expUnix int64) (string, error) {
    msg := sessionID + "." + strconv.FormatInt(expUnix, 10)
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(msg))
    sig := hex.EncodeToString(mac.Sum(nil))
    raw := msg + "." + sig
    return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

// ValidateDriverToken parses and validates the token against the expected
// session. Returns the embedded session ID and expiry.
func ValidateDriverToken(secret, token, expectSessionID string, now time.Time, skewSeconds int) (string, int64, error) {
    b, err := base64.RawURLEncoding.DecodeString(token)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    parts := strings.Split(string(b), ".")
    if len(parts) != 3 {
        return "", 0, ErrTokenFormat
    }
    sid, expStr, sigHex := parts[0], parts[1], parts[2]
    exp, err := strconv.ParseInt(expStr, 10, 64)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    if expectSessionID != "" && sid != expectSessionID {
        return "", 0, ErrTokenSID
    }
    msg := sid + "." + expStr
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(msg))
    want := mac.Sum(nil)
    got, err := hex.DecodeString(sigHex)
    if err != nil {
        return "", 0, ErrTokenFormat
    }
    if !hmac.Equal(want, got) {
        return "", 0, ErrTokenSig
    }
    skew := time.Duration(skewSeconds) * time.Second
    if now.After(time.Unix(exp, 0).Add(skew)) {
        return "", 0, ErrTokenExp
    }
    return sid, exp, nil
}

package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	requestIDPrefix = "req_"
	messageIDPrefix = "msg_"
)

var (
	requestIDPattern = regexp.MustCompile(`^req_[a-zA-Z0-9]{24}$`)
	messageIDPattern = regexp.MustCompile(`^msg_[a-zA-Z0-9]{24}$`)
)

// NewRequestID generates a new completion-request ID with the "req_" prefix
// followed by 24 cryptographically random alphanumeric characters. The ID
// correlates log lines and debug traces of one CreateMessage call.
func NewRequestID() string {
	return requestIDPrefix + randomAlphanumeric(idLength)
}

// NewMessageID generates a new message ID with the "msg_" prefix followed
// by 24 cryptographically random alphanumeric characters, the shape provider
// message IDs take on the wire.
func NewMessageID() string {
	return messageIDPrefix + randomAlphanumeric(idLength)
}

// ValidateRequestID checks whether the given string is a valid request ID
// (matches "req_" + 24 alphanumeric characters).
func ValidateRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}

// ValidateMessageID checks whether the given string is a valid message ID
// (matches "msg_" + 24 alphanumeric characters).
func ValidateMessageID(id string) bool {
	return messageIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}

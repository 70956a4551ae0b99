package common

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	// monotonic within a millisecond, so ids never collide inside one process
	entropy = ulid.Monotonic(rand.Reader, 0)
)

func NewULID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func NewMessageID() (string, error) {
	id, err := NewULID()
	if err != nil {
		return "", err
	}
	return "msg_" + id, nil
}

func NewConversationID() (string, error) {
	id, err := NewULID()
	if err != nil {
		return "", err
	}
	return "conv_" + id, nil
}

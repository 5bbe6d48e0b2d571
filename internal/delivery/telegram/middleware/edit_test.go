package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotModified(t *testing.T) {
	assert.True(t, notModified(errors.New("telegram: Bad Request: message is not modified: specified new message content (400)")))
	assert.False(t, notModified(errors.New("telegram: Bad Request: message to edit not found (400)")))
}

package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestClientErrorMatchesKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", &services.ClientError{Kind: store.ErrNotFound, Message: "file not found"})

	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, "file not found", services.ClientMessage(err, "fallback"))
	assert.Equal(t, "fallback", services.ClientMessage(errors.New("boom"), "fallback"))
}

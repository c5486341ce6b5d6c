package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, Store, KindOf(base))
	assert.Equal(t, NotFound, KindOf(E(NotFound, "products.find", nil)))

	wrapped := fmt.Errorf("outer: %w", E(Invalid, "products.create", base))
	assert.Equal(t, Invalid, KindOf(wrapped))
	assert.True(t, Is(wrapped, Invalid))
	assert.ErrorIs(t, wrapped, base)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "auth.login: unauthenticated", E(Unauthenticated, "auth.login", nil).Error())
	assert.Equal(t, "cart.add: store: boom", E(Store, "cart.add", errors.New("boom")).Error())
}

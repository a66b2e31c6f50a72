package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

func TestUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable(cause)

	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
}

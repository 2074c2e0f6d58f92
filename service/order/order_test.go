package order

import (
	"testing"

	"github.com/shopmesh/shopmesh/service"
	"github.com/stretchr/testify/assert"
)

func TestAppender_Append(t *testing.T) {
	var useCases = []struct {
		description string
		data        string
		expected    string
		expectError bool
	}{
		{
			description: "valid order with ID",
			data:        `{"id":10,"userId":1,"productId":2,"quantity":3}`,
			expected:    `{"id":10,"userId":1,"productId":2,"quantity":3}`,
		},
		{
			description: "order without ID gets the next one",
			data:        `{"userId":1,"productId":2}`,
			expected:    `{"id":1,"userId":1,"productId":2,"quantity":1}`,
		},
		{
			description: "missing userId",
			data:        `{"productId":2}`,
			expectError: true,
		},
		{
			description: "missing productId",
			data:        `{"userId":1}`,
			expectError: true,
		},
		{
			description: "malformed payload",
			data:        `{"userId":`,
			expectError: true,
		},
	}

	for _, useCase := range useCases {
		store := service.NewStore()
		appender := NewAppender()
		stored, err := appender.Append(store, []byte(useCase.data))
		if useCase.expectError {
			assert.NotNil(t, err, useCase.description)
			assert.Equal(t, 0, store.Size(), useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.Equal(t, useCase.expected, string(stored), useCase.description)
		assert.Equal(t, 1, store.Size(), useCase.description)
	}
}

func TestAppender_AppendSequence(t *testing.T) {
	store := service.NewStore()
	appender := NewAppender()
	_, err := appender.Append(store, []byte(`{"userId":1,"productId":1}`))
	assert.Nil(t, err)
	stored, err := appender.Append(store, []byte(`{"userId":2,"productId":5,"quantity":2}`))
	assert.Nil(t, err)
	assert.Equal(t, `{"id":2,"userId":2,"productId":5,"quantity":2}`, string(stored))
	assert.Equal(t, `[{"id":1,"userId":1,"productId":1,"quantity":1},{"id":2,"userId":2,"productId":5,"quantity":2}]`, string(store.Payload()))
}

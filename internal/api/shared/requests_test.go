package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Email string `json:"email" validate:"required,email"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
}

type selfValidatingRequest struct {
	Topic string `json:"topic"`

	validateErr error
}

func (r selfValidatingRequest) Validate() error {
	return r.validateErr
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"a@b.com","limit":10}`))

	var decoded taggedRequest
	require.NoError(t, DecodeJSON(req, &decoded))
	assert.Equal(t, "a@b.com", decoded.Email)
	assert.Equal(t, 10, decoded.Limit)
}

func TestDecodeJSONMalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":`))

	var decoded taggedRequest
	assert.Error(t, DecodeJSON(req, &decoded))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
	}{
		{
			name:    "valid tagged struct",
			input:   taggedRequest{Email: "a@b.com", Limit: 20},
			wantErr: false,
		},
		{
			name:    "missing required field",
			input:   taggedRequest{Limit: 20},
			wantErr: true,
		},
		{
			name:    "value out of range",
			input:   taggedRequest{Email: "a@b.com", Limit: 500},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("topic rejected")

	assert.NoError(t, ValidateRequest(selfValidatingRequest{Topic: "market"}))
	assert.ErrorIs(t, ValidateRequest(selfValidatingRequest{validateErr: sentinel}), sentinel)
}

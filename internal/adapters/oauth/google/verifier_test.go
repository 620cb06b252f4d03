package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromClaims(t *testing.T) {
	p, err := payloadFromClaims(map[string]interface{}{"email": "ada@example.com", "name": "Ada", "email_verified": true})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "Ada", p.Name)

	p, err = payloadFromClaims(map[string]interface{}{"email": "grace@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "grace", p.Name)

	_, err = payloadFromClaims(map[string]interface{}{"name": "Nobody"})
	assert.EqualError(t, err, "email not found in claims")

	_, err = payloadFromClaims(map[string]interface{}{"email": "x@example.com", "email_verified": false})
	assert.EqualError(t, err, "email not verified")
}

package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)
	movementID := "9f2c1e9a-0a41-4b47-bf0e-8a2f5f8d8f11"

	token := EncodeToken(createdAt, movementID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at should match after decode")
	assert.Equal(t, movementID, decodedID, "ID should match after decode")

	// IDs containing the separator survive the round trip; SplitN keeps the rest intact.
	pipeToken := EncodeToken(createdAt, "id|with|pipes")
	_, decodedPipeID, err := DecodeToken(pipeToken)
	assert.NoError(t, err)
	assert.Equal(t, "id|with|pipes", decodedPipeID)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 of a string with no separator.
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for missing separator")
	assert.Contains(t, err.Error(), "split")

	// Base64 of "notadate|some-id".
	_, _, err = DecodeToken("bm90YWRhdGV8c29tZS1pZA==")
	assert.Error(t, err, "Should return an error for invalid date")
	assert.Contains(t, err.Error(), "created_at parse")
}

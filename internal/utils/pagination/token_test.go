package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTaskToken(t *testing.T) {
	date := time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC)

	token := EncodeTaskToken(&date, 1234)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeTaskToken(token)
	require.NoError(t, err)
	require.NotNil(t, decodedDate)
	assert.True(t, date.Equal(*decodedDate), "Date should match after decode")
	assert.Equal(t, int64(1234), decodedID)
}

func TestEncodeDecodeTaskToken_NilDate(t *testing.T) {
	token := EncodeTaskToken(nil, 7)

	decodedDate, decodedID, err := DecodeTaskToken(token)
	require.NoError(t, err)
	assert.Nil(t, decodedDate, "Dateless tasks keep a nil date")
	assert.Equal(t, int64(7), decodedID)
}

func TestDecodeTaskTokenError(t *testing.T) {
	_, _, err := DecodeTaskToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeTaskToken(base64.URLEncoding.EncodeToString([]byte("no-separator")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeTaskToken(base64.URLEncoding.EncodeToString([]byte("notadate|3")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	_, _, err = DecodeTaskToken(base64.URLEncoding.EncodeToString([]byte("|abc")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

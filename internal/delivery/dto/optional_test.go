package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalAbsentNullValue(t *testing.T) {
	type payload struct {
		Email Optional[string] `json:"email"`
		Count Optional[int]    `json:"count"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.False(t, absent.Email.Present)
	require.False(t, absent.Email.Valid)
	require.Nil(t, absent.Email.Ptr())

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"email": null}`), &null))
	require.True(t, null.Email.Present)
	require.False(t, null.Email.Valid)
	require.Nil(t, null.Email.Ptr())

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"email": "ann@example.com", "count": 3}`), &set))
	require.True(t, set.Email.Present)
	require.True(t, set.Email.Valid)
	require.Equal(t, "ann@example.com", set.Email.Value)
	require.NotNil(t, set.Email.Ptr())
	require.Equal(t, 3, set.Count.Value)
}

func TestOptionalTypeMismatch(t *testing.T) {
	var out struct {
		Count Optional[int] `json:"count"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"count": "three"}`), &out))
}

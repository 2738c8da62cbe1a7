package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusinessErrLocalize(t *testing.T) {
	err := NewBusinessErr("email", CodeAlreadyRegistered)

	var bizErr *BusinessErr
	require.True(t, stderrors.As(fmt.Errorf("submit lead - %w", err), &bizErr), "business error must survive wrapping")
	require.Equal(t, "email", bizErr.Target())

	es := bizErr.Localize("es")
	en := bizErr.Localize("en")
	require.Contains(t, es.Message, "correo")
	require.Contains(t, en.Message, "email")
	require.Equal(t, es, bizErr.Localize("de"), "unknown language must fall back to spanish")
}

func TestBusinessErrMarshalJSON(t *testing.T) {
	err := NewBusinessErrWithDetail("role", CodeInvalidSelection, "invalid role")

	raw, mErr := json.Marshal(err)
	require.NoError(t, mErr)

	var wire LocalizedBusinessErr
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Equal(t, "role", wire.Target)
	require.Equal(t, CodeInvalidSelection, wire.Code)
	require.Equal(t, "invalid role", wire.Detail)
}

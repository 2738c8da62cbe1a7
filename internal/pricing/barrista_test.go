package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, raw string) LookupResponse {
	t.Helper()

	var resp LookupResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp), "lookup fixture must be valid json")
	return resp
}

func TestClassifyBarrista(t *testing.T) {
	t.Log("invalid phone is blocked")
	{
		c, err := ClassifyBarrista(lookup(t, `{"valid":false}`))
		require.NoError(t, err)
		require.True(t, c.Blocked)
		require.Empty(t, c.Type)
		require.Contains(t, c.Message("es"), "soporte")
	}

	t.Log("guest list means vip access")
	{
		c, err := ClassifyBarrista(lookup(t, `{"valid":true,"founded":true,"list":"invitados"}`))
		require.NoError(t, err)
		require.False(t, c.Blocked)
		require.Equal(t, MemberTypeVip, c.Type)
		require.Equal(t, 0.0, c.FinalPrice)
		require.False(t, c.RequiresPayment)
		require.Equal(t, CategoryGuest, c.CustomerCategoryID)
	}

	t.Log("member list means active barrista")
	{
		c, err := ClassifyBarrista(lookup(t, `{"valid":true,"founded":true,"list":"baristas"}`))
		require.NoError(t, err)
		require.Equal(t, MemberTypeActiveBarrista, c.Type)
		require.Equal(t, 3850.0, c.FinalPrice)
		require.True(t, c.RequiresPayment)
		require.Equal(t, CategoryBarrista, c.CustomerCategoryID)
	}

	t.Log("valid but unknown phone is a new barrista")
	{
		c, err := ClassifyBarrista(lookup(t, `{"valid":true,"founded":false}`))
		require.NoError(t, err)
		require.Equal(t, MemberTypeNewBarrista, c.Type)
		require.Equal(t, 3850.0, c.FinalPrice)
		require.True(t, c.RequiresPayment)
		require.Equal(t, CategoryBarrista, c.CustomerCategoryID)
	}

	t.Log("missing founded flag counts as not founded")
	{
		c, err := ClassifyBarrista(lookup(t, `{"valid":true}`))
		require.NoError(t, err)
		require.Equal(t, MemberTypeNewBarrista, c.Type)
	}

	t.Log("unknown list can't be classified")
	{
		_, err := ClassifyBarrista(lookup(t, `{"valid":true,"founded":true,"list":"patrocinadores"}`))
		require.ErrorIs(t, err, ErrUnclassifiable)
	}

	t.Log("missing valid flag can't be classified")
	{
		_, err := ClassifyBarrista(lookup(t, `{"founded":true}`))
		require.ErrorIs(t, err, ErrUnclassifiable)
	}
}

func TestClassificationMessageLanguage(t *testing.T) {
	c := Classification{Type: MemberTypeVip}
	require.Contains(t, c.Message("en"), "guest")
	require.Equal(t, c.Message("es"), c.Message("fr"), "unknown languages fall back to spanish")
}

package leads_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prospector-engine/internal/leads"
)

func TestUpsertDedupesByEmail(t *testing.T) {
	st := leads.NewStore()

	require.True(t, st.Upsert("Acme", "info@acme.com", "https://acme.com", "", "bing"))
	require.False(t, st.Upsert("Acme Again", "INFO@ACME.COM", "https://other.com", "", "bing"))
	require.False(t, st.Upsert("Nobody", "", "https://nobody.com", "", "bing"))

	require.Equal(t, 1, st.Len())
	rows := st.Snapshot()
	require.Equal(t, "Acme", rows[0].Company)
	require.Equal(t, "https://acme.com", rows[0].Website)
}

func TestEmailsInStoreOrder(t *testing.T) {
	st := leads.NewStore()
	st.Upsert("B", "b@b.com", "", "", "serp")
	st.Upsert("A", "a@a.com", "", "", "serp")
	st.Upsert("C", "c@c.com", "", "", "serp")

	require.Equal(t, []string{"b@b.com", "a@a.com", "c@c.com"}, st.Emails())
}

func TestHasIsCaseInsensitive(t *testing.T) {
	st := leads.NewStore()
	st.Upsert("Acme", "Info@Acme.com", "", "", "bing")
	require.True(t, st.Has("info@acme.com"))
	require.True(t, st.Has(" INFO@ACME.COM "))
	require.False(t, st.Has("other@acme.com"))
}

func TestReset(t *testing.T) {
	st := leads.NewStore()
	st.Upsert("Acme", "info@acme.com", "", "", "bing")
	st.Reset()

	require.Equal(t, 0, st.Len())
	require.False(t, st.Has("info@acme.com"))
	require.True(t, st.Upsert("Acme", "info@acme.com", "", "", "bing"))
}

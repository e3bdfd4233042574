package relation

import (
	"testing"

	"github.com/fediwatch/reporter/pkg/fedi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acct(handle string, suspended bool) fedi.Account {
	return fedi.Account{
		ID:        handle,
		Acct:      handle,
		URL:       "https://example.org/@" + handle,
		Suspended: suspended,
	}
}

func TestMergeFlags(t *testing.T) {
	followers := []fedi.Account{acct("a", false), acct("both", false)}
	following := []fedi.Account{acct("b", false), acct("both", false)}

	accounts, err := Merge(followers, following)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.True(t, accounts["a"].Follower)
	assert.False(t, accounts["a"].Following)
	assert.False(t, accounts["b"].Follower)
	assert.True(t, accounts["b"].Following)
	assert.True(t, accounts["both"].Follower)
	assert.True(t, accounts["both"].Following)
}

func TestMergeSymmetric(t *testing.T) {
	followers := []fedi.Account{acct("a", true), acct("both", true)}
	following := []fedi.Account{acct("b", false), acct("both", true)}

	ab, err := SuspendedAcquaintances(followers, following)
	require.NoError(t, err)

	// swapping the inputs swaps the flags but reconciles the same handles
	ba, err := SuspendedAcquaintances(following, followers)
	require.NoError(t, err)

	require.Len(t, ab, 2)
	require.Len(t, ba, 2)
	for i := range ab {
		assert.Equal(t, ab[i].Acct, ba[i].Acct)
		assert.Equal(t, ab[i].Follower, ba[i].Following)
		assert.Equal(t, ab[i].Following, ba[i].Follower)
	}
}

func TestSuspendedFilterAndSort(t *testing.T) {
	followers := []fedi.Account{
		acct("zeta", true),
		acct("Alpha", true),
		acct("beta", true),
		acct("ok", false),
	}

	out, err := SuspendedAcquaintances(followers, nil)
	require.NoError(t, err)

	handles := make([]string, 0, len(out))
	for _, rel := range out {
		handles = append(handles, rel.Acct)
	}

	// byte-wise ordering puts uppercase first
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, handles)
}

func TestScenarios(t *testing.T) {
	t.Run("suspended follower only", func(t *testing.T) {
		out, err := SuspendedAcquaintances(
			[]fedi.Account{acct("a", true)},
			[]fedi.Account{acct("b", false)},
		)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].Acct)
		assert.True(t, out[0].Follower)
		assert.False(t, out[0].Following)
		assert.True(t, out[0].Suspended)
	})

	t.Run("mutual suspended account collapses to one record", func(t *testing.T) {
		out, err := SuspendedAcquaintances(
			[]fedi.Account{acct("x", true)},
			[]fedi.Account{acct("x", true)},
		)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.True(t, out[0].Follower)
		assert.True(t, out[0].Following)
	})

	t.Run("no relations", func(t *testing.T) {
		out, err := SuspendedAcquaintances(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.NotNil(t, out)
	})
}

func TestMergeMissingHandle(t *testing.T) {
	_, err := Merge([]fedi.Account{{ID: "99"}}, nil)
	assert.Error(t, err)

	_, err = Merge(nil, []fedi.Account{{ID: "99"}})
	assert.Error(t, err)
}

func TestMergeFirstRecordWins(t *testing.T) {
	follower := acct("x", true)
	follower.URL = "https://one.example/@x"

	followee := acct("x", false)
	followee.URL = "https://two.example/@x"

	accounts, err := Merge([]fedi.Account{follower}, []fedi.Account{followee})
	require.NoError(t, err)

	rel := accounts["x"]
	require.NotNil(t, rel)
	assert.Equal(t, "https://one.example/@x", rel.URL)
	assert.True(t, rel.Suspended)
	assert.True(t, rel.Follower)
	assert.True(t, rel.Following)
}

func TestIdempotent(t *testing.T) {
	followers := []fedi.Account{acct("c", true), acct("a", true)}
	following := []fedi.Account{acct("b", true)}

	first, err := SuspendedAcquaintances(followers, following)
	require.NoError(t, err)

	second, err := SuspendedAcquaintances(followers, following)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

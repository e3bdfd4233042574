package relation

import (
	"fmt"
	"sort"

	"github.com/fediwatch/reporter/internal/common"
	"github.com/fediwatch/reporter/pkg/fedi"
)

// Merge folds the follower and following lists into one record per handle.
// Both flags end up explicitly set on every record: an account present in
// only one list keeps the other direction's zero value. The first record
// seen for a handle supplies the account fields.
func Merge(followers, following []fedi.Account) (map[string]*fedi.RelatedAccount, error) {
	accounts := map[string]*fedi.RelatedAccount{}

	for _, acc := range followers {
		if acc.Acct == "" {
			return nil, fmt.Errorf("follower account %s has no acct handle", acc.ID)
		}

		rel, ok := accounts[acc.Acct]
		if !ok {
			rel = &fedi.RelatedAccount{Account: acc}
			accounts[acc.Acct] = rel
		}
		rel.Follower = true
	}

	for _, acc := range following {
		if acc.Acct == "" {
			return nil, fmt.Errorf("following account %s has no acct handle", acc.ID)
		}

		rel, ok := accounts[acc.Acct]
		if !ok {
			rel = &fedi.RelatedAccount{Account: acc}
			accounts[acc.Acct] = rel
		}
		rel.Following = true
	}

	return accounts, nil
}

// Suspended filters the merged records down to the ones the server marks
// suspended, sorted ascending by handle. Ordering is byte-wise, so
// uppercase handles sort before lowercase ones.
func Suspended(accounts map[string]*fedi.RelatedAccount) []fedi.RelatedAccount {
	all := make([]fedi.RelatedAccount, 0, len(accounts))
	for _, rel := range accounts {
		all = append(all, *rel)
	}

	suspended := common.Filter(all, func(rel fedi.RelatedAccount) bool {
		return rel.Suspended
	})

	sort.Slice(suspended, func(i, j int) bool {
		return suspended[i].Acct < suspended[j].Acct
	})

	return suspended
}

// SuspendedAcquaintances reconciles the two lists and keeps the suspended
// ones. An empty result is a valid outcome, not an error.
func SuspendedAcquaintances(followers, following []fedi.Account) ([]fedi.RelatedAccount, error) {
	accounts, err := Merge(followers, following)
	if err != nil {
		return nil, err
	}

	return Suspended(accounts), nil
}

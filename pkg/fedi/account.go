package fedi

import "encoding/json"

// accountKeys are the typed fields of Account. UnmarshalJSON removes them
// from the passthrough bag so no field lives in both places.
var accountKeys = []string{"id", "acct", "url", "last_status_at", "suspended"}

// Account is a fediverse account as returned by the Mastodon client API.
// Only the fields the reporter reads are typed. Everything else the server
// sends is carried in Extra so cached entries round-trip without loss.
type Account struct {
	ID           string     `json:"id"`
	Acct         string     `json:"acct"`
	URL          string     `json:"url"`
	LastStatusAt StatusDate `json:"last_status_at"`
	Suspended    bool       `json:"suspended"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Account) UnmarshalJSON(data []byte) error {
	type alias Account

	var acc alias
	if err := json.Unmarshal(data, &acc); err != nil {
		return err
	}

	extra := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}

	for _, key := range accountKeys {
		delete(extra, key)
	}

	if len(extra) == 0 {
		extra = nil
	}

	acc.Extra = extra
	*a = Account(acc)

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (a Account) MarshalJSON() ([]byte, error) {
	out, err := a.jsonMap()
	if err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

// jsonMap renders the typed fields and merges the passthrough bag back in.
// Typed fields win on collision.
func (a Account) jsonMap() (map[string]json.RawMessage, error) {
	type alias Account

	b, err := json.Marshal(alias(a))
	if err != nil {
		return nil, err
	}

	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	for k, v := range a.Extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}

	return out, nil
}

// RelatedAccount is an account annotated with the directions of its
// relationship to the authenticated user.
type RelatedAccount struct {
	Account

	Follower  bool `json:"follower"`
	Following bool `json:"following"`
}

// MarshalJSON implements the json.Marshaler interface. The embedded
// account's marshaler would otherwise be promoted and drop the flags.
func (r RelatedAccount) MarshalJSON() ([]byte, error) {
	out, err := r.Account.jsonMap()
	if err != nil {
		return nil, err
	}

	out["follower"] = rawBool(r.Follower)
	out["following"] = rawBool(r.Following)

	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *RelatedAccount) UnmarshalJSON(data []byte) error {
	var flags struct {
		Follower  bool `json:"follower"`
		Following bool `json:"following"`
	}
	if err := json.Unmarshal(data, &flags); err != nil {
		return err
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return err
	}

	delete(acc.Extra, "follower")
	delete(acc.Extra, "following")
	if len(acc.Extra) == 0 {
		acc.Extra = nil
	}

	r.Account = acc
	r.Follower = flags.Follower
	r.Following = flags.Following

	return nil
}

func rawBool(b bool) json.RawMessage {
	if b {
		return json.RawMessage("true")
	}

	return json.RawMessage("false")
}

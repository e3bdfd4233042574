package fedi

type Instance struct {
	URI              string          `json:"uri"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	ContactAccount   InstanceContact `json:"contact_account"`
}

type InstanceContact struct {
	DisplayName string `json:"display_name"`
}

// InstanceSummary is the condensed instance record the reporter caches.
type InstanceSummary struct {
	URI              string `json:"uri"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	ContactAccount   string `json:"contact_account"`
}

func SummarizeInstance(i *Instance) *InstanceSummary {
	return &InstanceSummary{
		URI:              i.URI,
		Title:            i.Title,
		ShortDescription: i.ShortDescription,
		ContactAccount:   i.ContactAccount.DisplayName,
	}
}

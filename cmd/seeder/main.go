package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fediwatch/reporter/internal/cache"
	"github.com/fediwatch/reporter/internal/relation"
	"github.com/fediwatch/reporter/pkg/fedi"
	"go.uber.org/zap"
)

// Seeds the cache files with a plausible fake dataset so the reporter can
// be exercised without an instance or an access token. Run the reporter
// within the cache lifespan afterwards, or with CACHE_POLICY=keep.
func main() {
	dir := flag.String("dir", ".", "directory to write cache entries to")

	count := flag.Int("count", 25, "number of follower accounts")

	overlap := flag.Float64("overlap", 0.4, "fraction of followers that are also followed back")

	suspendedRate := flag.Float64("suspended", 0.2, "fraction of accounts marked suspended")

	seed := flag.Int64("seed", 0, "seed for reproducible data (0 uses the clock)")

	flag.Parse()

	if *count < 0 || *overlap < 0 || *overlap > 1 {
		log.Fatal("count must be >= 0 and overlap within [0, 1]")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gofakeit.Seed(*seed)

	log.Default().Println("seeding cache in: ", *dir)

	store, err := cache.NewStore(*dir, time.Now(), cache.PolicyKeep, time.Hour, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}

	domain := gofakeit.DomainName()

	summary := &fedi.InstanceSummary{
		URI:              domain,
		Title:            gofakeit.Company(),
		ShortDescription: gofakeit.Sentence(8),
		ContactAccount:   gofakeit.Name(),
	}

	user := strings.ToLower(gofakeit.Username())
	me := fedi.Account{
		ID:           strconv.Itoa(gofakeit.Number(1, 999999)),
		Acct:         user,
		URL:          fmt.Sprintf("https://%s/@%s", domain, user),
		LastStatusAt: fedi.StatusDate(time.Now().AddDate(0, 0, -1)),
	}

	followers := make([]fedi.Account, 0, *count)
	for i := 0; i < *count; i++ {
		followers = append(followers, fakeAccount(i+1, *suspendedRate))
	}

	// the mutual share comes straight from the followers list, the rest
	// are accounts only we follow
	mutual := int(float64(*count) * *overlap)

	following := make([]fedi.Account, 0, *count)
	following = append(following, followers[:mutual]...)
	for i := *count; i < 2*(*count)-mutual; i++ {
		following = append(following, fakeAccount(i+1, *suspendedRate))
	}

	entries := []struct {
		name string
		data any
	}{
		{fedi.OpInstanceSummary, summary},
		{fedi.OpMyInfo, me},
		{fedi.OpFollowers, followers},
		{fedi.OpFollowing, following},
	}

	for _, entry := range entries {
		err := store.Put(entry.name, entry.data)
		if err != nil {
			log.Fatal(err)
		}
		log.Default().Println("wrote: ", store.EntryPath(entry.name))
	}

	rel, err := relation.SuspendedAcquaintances(followers, following)
	if err != nil {
		log.Fatal(err)
	}

	log.Default().Printf("%d accounts will appear suspended", len(rel))
}

func fakeAccount(id int, suspendedRate float64) fedi.Account {
	user := strings.ToLower(gofakeit.Username())
	home := gofakeit.DomainName()

	acc := fedi.Account{
		ID:        strconv.Itoa(id),
		Acct:      fmt.Sprintf("%s@%s", user, home),
		URL:       fmt.Sprintf("https://%s/@%s", home, user),
		Suspended: gofakeit.Float64Range(0, 1) < suspendedRate,
		Extra: map[string]json.RawMessage{
			"display_name":    rawJSON(gofakeit.Name()),
			"followers_count": rawJSON(gofakeit.Number(0, 5000)),
			"bot":             rawJSON(gofakeit.Bool()),
		},
	}

	// a slice of accounts have never posted
	if gofakeit.Float64Range(0, 1) > 0.1 {
		acc.LastStatusAt = fedi.StatusDate(gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()))
	}

	return acc
}

func rawJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fediwatch/reporter/internal/cache"
	"github.com/fediwatch/reporter/internal/config"
	"github.com/fediwatch/reporter/pkg/fedi"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

// Lists or purges the reporter's cache entries. The reporter itself never
// invalidates entries; deleting them to force a refetch is this command's
// job.
func main() {
	env := flag.String("env", ".env", "path to .env file")

	purge := flag.Bool("purge", false, "remove all cache entries")

	flag.Parse()

	ctx := context.Background()

	conf, err := config.NewCacheConfig(ctx, *env)
	if err != nil {
		log.Fatal(err)
	}

	store, err := cache.NewStore(conf.CacheDir, time.Now(), cache.Policy(conf.CachePolicy), conf.CacheTTL, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}

	if *purge {
		for _, name := range fedi.Ops() {
			_, ok, err := store.Stat(name)
			if err != nil {
				log.Fatal(err)
			}
			if !ok {
				continue
			}

			err = store.Remove(name)
			if err != nil {
				log.Fatal(err)
			}
			log.Default().Println("removed: ", store.EntryPath(name))
		}
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"entry", "size", "written", "age", "fresh"})
	table.SetAutoFormatHeaders(false)

	for _, name := range fedi.Ops() {
		entry, ok, err := store.Stat(name)
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			table.Append([]string{name, "-", "-", "-", "-"})
			continue
		}

		table.Append([]string{
			entry.Name,
			fmt.Sprintf("%d B", entry.Size),
			entry.WrittenAt.Format(time.RFC3339),
			entry.Age.Round(time.Second).String(),
			strconv.FormatBool(entry.Fresh),
		})
	}

	table.Render()
}

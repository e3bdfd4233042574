package report

import (
	"io"
	"strconv"

	"github.com/fediwatch/reporter/pkg/fedi"
	"github.com/olekukonko/tablewriter"
)

var columns = []string{"row", "url", "acct", "last_status_at", "follower", "following"}

// Row is one line of the suspended-acquaintances table. The row number is
// assigned at render time and is not part of the record.
type Row struct {
	URL          string          `json:"url"`
	Acct         string          `json:"acct"`
	LastStatusAt fedi.StatusDate `json:"last_status_at"`
	Follower     bool            `json:"follower"`
	Following    bool            `json:"following"`
}

// Rows projects reconciled accounts onto the table's columns.
func Rows(accounts []fedi.RelatedAccount) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, Row{
			URL:          acc.URL,
			Acct:         acc.Acct,
			LastStatusAt: acc.LastStatusAt,
			Follower:     acc.Follower,
			Following:    acc.Following,
		})
	}

	return rows
}

// Render writes the table to w. The column labels appear as both header and
// footer, and rows are numbered from 1. No rows still renders a valid,
// empty table.
func Render(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(columns)
	table.SetFooter(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor},
		tablewriter.Colors{tablewriter.FgGreenColor},
		tablewriter.Colors{},
		tablewriter.Colors{},
		tablewriter.Colors{tablewriter.FgBlueColor},
		tablewriter.Colors{tablewriter.FgBlueColor},
	)

	for i, row := range rows {
		table.Append([]string{
			strconv.Itoa(i + 1),
			row.URL,
			row.Acct,
			row.LastStatusAt.String(),
			strconv.FormatBool(row.Follower),
			strconv.FormatBool(row.Following),
		})
	}

	table.Render()
}

package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `tally counts how often a habit happens each day. Fewer is better: the habits tracked are ones the user wants to break.

Core concepts:
- Habit: a named counter with a colour and an optional daily goal (0 means no goal).
- Count: the value of one habit on one calendar day (YYYY-MM-DD). A missing day is zero.
- Report: totals over the last 7 or 30 days, oldest day first.

Workflow:
1) Call list_habits to find habit ids.
2) Use increment_today / reset_today for today, upsert_count for any other day.
3) Use list_counts for recent history and get_report for summaries.

Docs:
- tally://docs/index
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "tally://docs/index",
		Name:        "docs_index",
		Title:       "tally docs index",
		Description: "Tools, data model and report semantics.",
		Content: `# tally: Agent Docs

## Tools

- ` + "`list_habits`" + ` lists active habits, newest first.
- ` + "`create_habit`" + ` / ` + "`update_habit`" + ` / ` + "`delete_habit`" + ` manage habits. Deleting keeps the counts.
- ` + "`increment_today`" + ` adds one to today's count and returns the new value with a mood.
- ` + "`reset_today`" + ` clears today's count.
- ` + "`upsert_count`" + ` overwrites a day's count. The last write wins.
- ` + "`list_counts`" + ` returns stored counts dated within the last ` + "`days`" + ` (default 7), newest first.
- ` + "`get_report`" + ` summarises 7 or 30 days ending today.

## Report fields

- ` + "`days`" + `: one entry per calendar day, zero when nothing was counted.
- ` + "`average_count`" + `: total divided by the window, rounded to one decimal.
- ` + "`max_count`" + `: largest day, never below 1.
- ` + "`goal_met_days`" + `: days whose count reached the daily goal; 0 when no goal is set.

## Moods

0 happy, 1-3 neutral, 4-7 worried, 8-12 sad, 13+ very sad.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

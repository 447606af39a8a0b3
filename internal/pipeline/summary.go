package pipeline

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary describes one completed run.
type Summary struct {
	RunID         string
	Input         string
	Output        string
	Format        string
	Records       int
	SkippedBlocks int
	Regenerative  int
	Biomimetic    int
	Fetched       int
	FetchFailures int
	CacheHits     int
	Duration      time.Duration
}

func summarize(runID string, stats []recordStats) *Summary {
	s := &Summary{RunID: runID, Records: len(stats)}
	for _, st := range stats {
		if st.regenerative {
			s.Regenerative++
		}
		if st.biomimetic {
			s.Biomimetic++
		}
		if st.fetched {
			s.Fetched++
		}
		if st.fetchFailed {
			s.FetchFailures++
		}
		if st.cached {
			s.CacheHits++
		}
	}
	return s
}

// Render writes the summary as a two-column table.
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Run " + s.RunID)

	t.AppendHeader(table.Row{"Metric", "Value"})
	if s.Input != "" {
		t.AppendRow(table.Row{"Input", s.Input})
		t.AppendRow(table.Row{"Format", s.Format})
	}
	if s.Output != "" {
		t.AppendRow(table.Row{"Output", s.Output})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Projects", s.Records})
	if s.SkippedBlocks > 0 {
		t.AppendRow(table.Row{"Skipped blocks", s.SkippedBlocks})
	}
	t.AppendRow(table.Row{"Regenerative", s.Regenerative})
	t.AppendRow(table.Row{"Biomimetic", s.Biomimetic})
	t.AppendRow(table.Row{"Descriptions fetched", s.Fetched})
	t.AppendRow(table.Row{"Cache hits", s.CacheHits})
	t.AppendRow(table.Row{"Fetch failures", s.FetchFailures})
	t.AppendRow(table.Row{"Duration", s.Duration.Round(time.Millisecond).String()})

	t.Render()
}

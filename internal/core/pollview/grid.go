package pollview

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

// WriteGrid renders d as a text table with one column per option, one row
// per participant and a final row of yes counts.
func WriteGrid(w io.Writer, d *PollData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{""}
	for _, opt := range d.Options {
		header = append(header, opt.Label())
	}
	if err := writeRow(tw, header); err != nil {
		return err
	}

	for _, p := range d.Participants {
		row := []string{p.Name}
		for _, v := range p.Votes {
			row = append(row, icon(v))
		}
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}

	footer := []string{"yes"}
	for _, opt := range d.Options {
		footer = append(footer, strconv.Itoa(opt.Score))
	}
	if err := writeRow(tw, footer); err != nil {
		return err
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.Join(cells, "\t"))
	return err
}

// icon leaves unset and unknown votes blank.
func icon(v domain.VoteType) string {
	if v == domain.VoteUnset {
		return ""
	}
	s, err := v.Icon()
	if err != nil {
		log.Warn().Err(err).Msg("vote has no grid icon")
		return ""
	}
	return s
}

// Label is the column heading of the option: its day, or its start and
// end times.
func (o OptionView) Label() string {
	if o.Type != domain.ValueTypeTime {
		return o.Date
	}
	end := o.End
	if day := domain.DayOf(o.End); day == domain.DayOf(o.Start) {
		end = strings.TrimPrefix(o.End, day+"T")
	}
	return o.Start + "-" + end
}

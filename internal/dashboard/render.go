package dashboard

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const dateLayout = "January 2, 2006"

// Render writes the current view as a table.
func (v *View) Render(w io.Writer) error {
	switch v.State() {
	case StateLoading:
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	case StateError:
		_, err := fmt.Fprintln(w, v.Message())
		return err
	}

	rows := v.Results()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tEMAIL\tDATE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", displayTitle(row), displayEmail(row), v.displayDate(row))
	}
	return tw.Flush()
}

func displayTitle(r Row) string {
	if r.Title == "" {
		return "Untitled"
	}
	return r.Title
}

func displayEmail(r Row) string {
	if r.Gmail == "" {
		return "No email provided"
	}
	return r.Gmail
}

func (v *View) displayDate(r Row) string {
	switch {
	case r.Timestamp == "":
		return "No date provided"
	case !r.dated:
		return "Invalid Date"
	default:
		return r.SubmittedAt.In(v.loc).Format(dateLayout)
	}
}

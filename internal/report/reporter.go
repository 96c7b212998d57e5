package report

import "time"

// Reporter turns take-and-reset reads of a Source into sequenced reports.
// Not safe for concurrent use; only the reporting loop calls it.
type Reporter struct {
	src    Source
	totals Totals
}

// NewReporter creates a Reporter reading from src.
func NewReporter(src Source) *Reporter {
	return &Reporter{src: src}
}

// Take reads and resets the source and returns the report for the interval
// ending at now.
func (r *Reporter) Take(now time.Time) Report {
	rep := Report{
		Seq:       r.totals.Reports + 1,
		Timestamp: now,
		Count:     r.src.TakeAndReset(),
	}

	r.totals.Reports++
	r.totals.Edges += rep.Count
	if rep.Count > r.totals.Peak {
		r.totals.Peak = rep.Count
	}
	r.totals.Last = rep

	return rep
}

// Totals returns a copy of the running totals.
func (r *Reporter) Totals() Totals {
	return r.totals
}

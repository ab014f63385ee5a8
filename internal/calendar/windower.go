package calendar

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const dateKey = "2006-01-02"

// Windower projects saved listings onto the days of one month
type Windower struct {
	resolver PhaseResolver
	log      zerolog.Logger
}

func NewWindower(resolver PhaseResolver, log zerolog.Logger) *Windower {
	return &Windower{resolver: resolver, log: log}
}

// Window buckets every record's phases into the days of year/month.
//
// Days outside the month are dropped. Within a day, entries keep the order of
// records. A record whose dates cannot be read is skipped entirely.
func (w *Windower) Window(records []Record, year int, month time.Month) Bucket {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	bucket := Bucket{}
	for _, rec := range records {
		days, err := w.statuses(rec, first, last)
		if err != nil {
			w.log.Warn().Err(err).
				Str("source", string(rec.Source)).
				Str("id", rec.ID).
				Msg("calendar: skipping record with unreadable dates")
			continue
		}
		if len(days) == 0 {
			continue
		}

		title := w.resolver.Title(rec.Source, rec.Fields)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			st, ok := days[d]
			if !ok {
				continue
			}
			key := d.Format(dateKey)
			bucket[key] = append(bucket[key], Entry{
				ID:     rec.ID,
				Title:  title,
				Source: rec.Source,
				Status: st,
			})
		}
	}
	return bucket
}

// statuses resolves one status per day for a record, clipped to [first, last]
func (w *Windower) statuses(rec Record, first, last time.Time) (map[time.Time]Status, error) {
	phases, err := w.resolver.Phases(rec.Source, rec.Fields)
	if err != nil {
		return nil, err
	}

	days := map[time.Time]Status{}
	for _, p := range phases {
		if p.End.Before(p.Start) {
			return nil, fmt.Errorf("inverted phase %s ~ %s", p.Start.Format(dateKey), p.End.Format(dateKey))
		}

		from, to := p.Start, p.End
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			st := phaseStatus(p, d)
			if cur, ok := days[d]; !ok || precedence[st] > precedence[cur] {
				days[d] = st
			}
		}
	}
	return days, nil
}

func phaseStatus(p Phase, d time.Time) Status {
	if p.Exam {
		return StatusExam
	}
	if !d.Before(p.End.AddDate(0, 0, -(closingSoonDays - 1))) {
		return StatusClosingSoon
	}
	if d.Equal(p.Start) {
		return StatusOpen
	}
	return StatusAccepting
}

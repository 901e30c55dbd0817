package delayjob

import (
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

const warningsKey = "delayjob.warnings"

// warnings keeps the first errors of skipped lines.
type warnings struct {
	limit   int
	errs    *multierror.Error
	skipped int
}

func newWarnings(limit int) *warnings {
	return &warnings{limit: limit}
}

func (w *warnings) add(err error) {
	w.skipped++
	if w.skipped > w.limit {
		return
	}
	log.Warn().Err(err).Msg("skipping malformed line")
	if w.skipped == w.limit {
		log.Warn().Int("limit", w.limit).Msg("too many malformed lines; further ones are skipped silently")
	}
	w.errs = multierror.Append(w.errs, err)
}

func (w *warnings) errorOrNil() error {
	return w.errs.ErrorOrNil()
}

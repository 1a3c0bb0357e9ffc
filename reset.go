package settings

import (
	"errors"

	"github.com/rs/zerolog"
)

// ResetController restores sections to their schema defaults and persists the result.
type ResetController struct {
	store  *Store
	saver  Saver
	logger zerolog.Logger
}

// NewResetController creates a controller. A nil saver resets memory only.
func NewResetController(st *Store, saver Saver, logger zerolog.Logger) *ResetController {
	return &ResetController{store: st, saver: saver, logger: logger}
}

// ResetSection restores every option of section to its default, emits one ChangeEvent
// per changed option, and saves. If saving fails the in-memory reset stands and a
// *PersistenceError is returned; durable state lags until the next successful save.
func (r *ResetController) ResetSection(section Section) error {
	changed, err := r.store.resetSection(section)
	if err != nil {
		return err
	}
	r.logger.Info().Str("section", string(section)).Int("changed", changed).Msg("settings section reset to defaults")

	return r.save()
}

// ResetAll resets every registered section, then saves once.
func (r *ResetController) ResetAll() error {
	total := 0
	for _, section := range r.store.Schema().Sections() {
		changed, err := r.store.resetSection(section)
		if err != nil {
			return err
		}
		total += changed
	}
	r.logger.Info().Int("changed", total).Msg("all settings reset to defaults")

	return r.save()
}

func (r *ResetController) save() error {
	if r.saver == nil {
		return nil
	}
	if err := r.saver.Save(r.store); err != nil {
		r.logger.Warn().Err(err).Msg("settings reset in memory but not persisted")
		var perr *PersistenceError
		if errors.As(err, &perr) {
			return perr
		}
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

package screen

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
)

// Deps are the shared services every screen is built with
type Deps struct {
	Session *session.Controller
	Journal *history.Journal // nil when the journal is disabled
	Keys    ui.KeyMap
	Rand    *rand.Rand
	Logger  *zap.Logger
}

func (d Deps) lang() locale.Language {
	return d.Session.Language()
}

func (d Deps) t(key locale.Key) string {
	return locale.T(d.Session.Language(), key)
}

package board

import (
	core "github.com/goliatone/go-metrics-board/components/dashboard"
)

// Shell exposes the underlying components/dashboard.Shell type.
type Shell = core.Shell

// ShellOptions re-export for convenience.
type ShellOptions = core.ShellOptions

// Store re-export so embedders can supply their own persistence.
type Store = core.Store

// NewShell proxies to the internal constructor.
func NewShell(opts ShellOptions) *Shell {
	return core.NewShell(opts)
}

// Package source provides the producer side of the mix pipeline.
package source

import "go.uber.org/fx"

// Module provides the capture sources.
var Module = fx.Module("source",
	fx.Provide(NewSupervisor),
)

package application

import "expvar"

// counters are published under "rituday" on /debug/vars when enabled.
var counters = expvar.NewMap("rituday")

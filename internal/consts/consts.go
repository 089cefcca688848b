package consts

const (
	PivotTol = 1e-12 // pivots below this magnitude are treated as singular
	TimeEps  = 1e-9  // tolerance for transient loop end and tstart comparison
)

package symplot

// RecomputeVars exposes the uncached free-variable walk to the external tests.
var RecomputeVars = recomputeVars

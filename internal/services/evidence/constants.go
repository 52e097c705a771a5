package evidence

// Per-source confidence assigned to gathered items. Reflects how much
// each class of source is trusted before the engine applies its own
// reliability weighting.
const (
	RegistryConfidence  = 0.90
	NewsConfidence      = 0.70
	SanctionsConfidence = 0.95
	AIConfidence        = 0.80
)

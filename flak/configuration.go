package flak

// Configuration holds the FLAK-specific rule knobs that are needed in
// addition to the host Environment to assemble a Setup: rating and
// compensation scaling, starting-distance geometry, and the strength
// adjustment threshold. These map 1:1 to the original configuration file
// entries; defaults below mirror the shipped values.
type Configuration struct {
	RatingBeamScale int
	RatingTorpScale int
	RatingBayScale  int
	RatingMassScale int

	StartingDistanceShip     int32
	StartingDistancePlanet   int32
	StartingDistancePerPlayer int32
	StartingDistancePerFleet  int32

	CompensationShipScale      int
	CompensationBeamScale      int
	CompensationTorpScale      int
	CompensationFighterScale   int
	CompensationLimit          int
	CompensationMass100KTScale int
	CompensationAdjust         int
}

// DefaultConfiguration returns the standard FLAK configuration defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		RatingBeamScale: 1,
		RatingTorpScale: 1,
		RatingBayScale:  200,
		RatingMassScale: 1,

		StartingDistanceShip:      26000,
		StartingDistancePlanet:    30000,
		StartingDistancePerPlayer: 2500,
		StartingDistancePerFleet:  2000,

		CompensationShipScale:      100,
		CompensationBeamScale:      20,
		CompensationTorpScale:      100,
		CompensationFighterScale:   100,
		CompensationLimit:          900,
		CompensationMass100KTScale: 20,
		CompensationAdjust:         0,
	}
}

func computeRating(d *UnitData, cfg Configuration) int32 {
	return int32(d.Mass)*int32(cfg.RatingMassScale) +
		int32(d.NumLaunchers)*int32(d.TorpedoType)*int32(cfg.RatingTorpScale) +
		int32(d.NumBeams)*int32(d.BeamType)*int32(cfg.RatingBeamScale) +
		int32(d.NumBays)*int32(cfg.RatingBayScale)
}

func computeCompensation(d *UnitData, cfg Configuration) int {
	strength := cfg.CompensationShipScale +
		d.NumLaunchers*cfg.CompensationTorpScale +
		d.NumBeams*cfg.CompensationBeamScale +
		d.NumBays*cfg.CompensationFighterScale +
		d.Mass*cfg.CompensationMass100KTScale/100
	return clampInt(strength, 0, cfg.CompensationLimit)
}

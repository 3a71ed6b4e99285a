package flak

// Manifest constants for FLAK game rules (see original_source definitions.hpp).
const (
	MaxBeams     = 20 // Maximum number of beams per unit.
	MaxTorpTubes = 20 // Maximum number of torpedo launchers per unit.
	MaxBays      = 50 // Maximum number of fighter bays per unit.
	NumOwners    = 12 // Maximum player number.

	ChooseEnemyInterval = 30 // Ticks between choose-enemy passes.

	DiffOffset          = 100 // Offset for targeting rating difference.
	DivisorIfSmaller    = 100 // Targeting divisor if we're smaller than the target.
	DivisorIfBigger     = 250 // Targeting divisor if we're bigger than the target.
	DivisorSameEnemyBonus = 150 // Targeting divisor bonus for keeping the same target.
	MultiplierMin       = 50  // Minimum targeting multiplier.

	TorpLimitFactor = 120 // Safety factor (percent) for torpedo firing limit.

	// TorpLimitDamageHeadroom and TorpLimitDamageHeadroomLizard are the
	// damage ceilings used when projecting how many torpedoes are needed to
	// finish a target off. Deliberately looser than DamageSurvivalLimit's
	// 99/150: this is a planning margin, not the actual death threshold.
	TorpLimitDamageHeadroom       = 100
	TorpLimitDamageHeadroomLizard = 151

	CompensationLimitFactor = 2    // Compensation bonus gate divisor.
	CompensationDivisor     = 1000 // Compensation formula offset.

	TorpMovementSpeed    = 1000 // Torpedo movement speed, meters/tick.
	FighterInterceptRange = 128 // Fighter intercept range, meters.

	MFLScale   = 2  // MaxFightersLaunched scale per bay.
	MaxMFL     = 50 // Maximum simultaneously launched fighters.
	MinMFL     = 1  // Minimum simultaneously launched fighters.

	RaceLizard    = 2 // Survival damage limit bumped to 150.
	RacePrivateer = 5 // Beam kill power tripled.

	LizardDamageLimit  = 150
	NormalDamageLimit  = 99
	LizardSurvivalLimit = 150
	NormalSurvivalLimit = 99

	MinCrewAlive = 0.5 // Below this, a non-planet unit is dead.

	MaxDamageCap = 9999 // Hard cap on accumulated hull damage.
	MaxShieldDamagePerHit = 10000

	FighterStrikeKillPower   = 2 // Crew-kill power of one fighter strike.
	FighterStrikeDamagePower = 4 // Hull-damage power of one fighter strike.
)

// EndingStatus values recorded on a unit once the battle concludes.
const (
	EndingStatusDestroyed = -1
	EndingStatusSurvived  = 0
	// Any positive value is the capturing player's number.
)

// NoEnemy is the sentinel distinguishing "no enemy / unknown" from a valid
// unit index in visualization events.
const NoEnemy = -1

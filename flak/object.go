package flak

// UnitData is the immutable-for-the-whole-battle part of a unit (ship or
// planet; the simulator calls both "ship"). It is set once by the Setup
// and never mutated by the Algorithm.
type UnitData struct {
	Index   int
	ID      int
	Owner   int // player number, 1-based
	IsPlanet bool

	Mass          int
	Rating        int32
	Compensation  int
	InitialShield int
	InitialDamage int
	InitialCrew   int

	NumBeams     int // <= MaxBeams
	NumLaunchers int // <= MaxTorpTubes
	NumBays      int // <= MaxBays

	BeamType     int
	TorpedoType  int

	InitialFighters  int
	InitialTorpedoes int

	MaxFightersLaunched int
	ExperienceLevel     int

	Fleet int // index of the owning fleet

	Name string
}

// UnitConfig is the immutable-but-derived (from UnitData + Environment at
// construction time) part of a unit: recharge rates, hit odds, damage
// scalings, firing ranges, fighter stats, and option snapshots. All fields
// are integers except the FireOnAttackFighters flag; hit odds, damage
// scalings and FighterKillOdds are clamped to the ranges mandated by §6.1,
// the other values are taken from Environment as they are.
type UnitConfig struct {
	BayRechargeRate  int
	BeamRechargeRate int
	TubeRechargeRate int

	TorpHitOdds int
	BeamHitOdds int
	BeamHitBonus int

	ShieldKillScaling  int
	ShieldDamageScaling int
	HullDamageScaling   int
	CrewKillScaling     int

	BeamFiringRange  int32
	TorpFiringRange  int32
	FighterFiringRange int32

	FighterMovementSpeed int
	FighterStrikes       int

	BayLaunchInterval int
	BeamHitFighterCharge int
	BeamHitShipCharge    int

	StandoffDistance int32

	FireOnAttackFighters bool
	FighterKillOdds      int
}

// UnitStatus is the mutable-per-tick part of a unit.
type UnitStatus struct {
	Shield float64 // [0, 100]
	Damage float64 // >= 0, capped at MaxDamageCap
	Crew   float64 // >= 0

	Alive     bool
	LastHitBy int // unit index, or -1

	BeamCharge  [MaxBeams]int     // [0, 1000]
	TubeCharge  [MaxTorpTubes]int // [0, 1000]
	BayCharge   [MaxBays]int      // [0, 1000]

	TorpedoLimit    int // tubes enabled this cycle
	LaunchCountdown int

	FightersInFlight int
	FightersRemaining int

	ReceivedTorpedoes int // delayed transfers from destroyed fleetmates
	NumTorpedoes      int

	MinFightersAboard int
	TorpsHit          int

	ZOffset int32 // position within fleet, for visualization stacking
}

// Unit is a ship or planet: the Data/Config/Status triple. It carries no
// position of its own; a unit's position is its fleet's Status.Position plus
// the unit's Status.ZOffset.
type Unit struct {
	Data   UnitData
	Config UnitConfig
	Status UnitStatus
}

// IsAlive reports whether the unit may still be targeted or act.
func (u *Unit) IsAlive() bool { return u.Status.Alive }

// DamageSurvivalLimit returns the damage threshold above which a unit of
// this owner's race is destroyed outright (the "Lizard" race tolerates more
// damage before death).
func DamageSurvivalLimit(raceNumber int) float64 {
	if raceNumber == RaceLizard {
		return LizardDamageLimit
	}
	return NormalDamageLimit
}

// FleetData is the immutable part of a fleet.
type FleetData struct {
	Owner        int
	FirstUnit    int
	UnitCount    int
	Speed        int
	InitialX     int32
	InitialY     int32
	AttackList   []AttackEdge // (target unit index, rating bonus)
}

// AttackEdge is one (target, bonus) edge in a fleet's attack list. The
// target must belong to a different owner (Setup invariant #3).
type AttackEdge struct {
	Target      int
	RatingBonus int16
}

// FleetStatus is the mutable-per-tick part of a fleet.
type FleetStatus struct {
	Position    Position
	NewPosition Position // movement-phase scratch value

	Enemy int // unit index, or -1
	Alive bool
}

// Fleet is a contiguous group of units belonging to one player that shares
// a common enemy and moves together.
type Fleet struct {
	Data   FleetData
	Status FleetStatus
}

// IsAlive reports whether the fleet still has living units.
func (f *Fleet) IsAlive() bool { return f.Status.Alive }

// TransientKind distinguishes fighters, torpedoes, and objects already
// marked for removal this tick.
type TransientKind int

const (
	KindFighter TransientKind = iota
	KindTorpedo
	KindDeleteMe
)

// Transient is a fighter or torpedo: something launched by a unit and later
// destroyed, landed, or resolved on impact.
type Transient struct {
	Kind           TransientKind
	CanChangeEnemy bool // fighters only

	Position Position
	Enemy    int // unit index, or -1
	Owner    int // unit index

	Strikes int // fighters: remaining strike budget; torpedoes: 1=hit, 0=miss

	Kill       int
	Explosion  int // zero iff death ray
	Speed      int

	VisID int
}

// IsDeathRay reports whether this transient's weapon is a death ray (zero
// explosion power): it kills crew but does no hull damage.
func (t *Transient) IsDeathRay() bool { return t.Explosion == 0 }

// PlayerAggregate tracks per-player derived state the Algorithm needs every
// tick: living-unit bookkeeping and the mixed fighter/torpedo object list.
type PlayerAggregate struct {
	Number int

	NumLiveUnits int
	SumCompensation int32

	Stuff []*Transient // live transient objects, in launch order

	HasEverHadFighters bool
	FighterKillOdds    int
}

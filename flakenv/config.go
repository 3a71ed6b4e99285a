// Package flakenv is a reference flak.Environment implementation backed by
// a viper-loaded configuration file: weapon tables and rule options come
// from YAML/JSON/env the way Knoblauchpilze-sogserver's server loads its
// own database and logger settings.
package flakenv

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/flak-sim/flak/flak"
)

// Config is a flak.Environment backed by a *viper.Viper instance. Every
// per-player and per-experience-level lookup has a
// "Players.Default"/"Experience.Default" fallback so a configuration file
// only needs to override the players that differ from the common case;
// scalar rule options and weapon tables are read from their single key.
type Config struct {
	v *viper.Viper
}

var _ flak.Environment = (*Config)(nil)

// Load reads configFile (any format viper supports by extension) plus
// environment variables under the FLAK_ prefix, and returns a ready Config.
// Dotted keys (e.g. "Players.3.ShipMovementSpeed") map to nested sections;
// FLAK_PLAYERS_3_SHIPMOVEMENTSPEED overrides the same key from the shell.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetEnvPrefix("FLAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("flakenv: read config %q: %w", configFile, err)
	}
	return &Config{v: v}, nil
}

// NewFromViper wraps an already-configured *viper.Viper (useful when the
// enclosing game merges FLAK's keys into its own larger configuration tree
// rather than giving FLAK its own file).
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

var scalarKeys = map[flak.ScalarOption]string{
	flak.AllowAlternativeCombat: "Rules.AllowAlternativeCombat",
	flak.FireOnAttackFighters:   "Rules.FireOnAttackFighters",
	flak.StandoffDistance:       "Rules.StandoffDistance",
}

func (c *Config) GetConfiguration(opt flak.ScalarOption) int {
	key, ok := scalarKeys[opt]
	if !ok {
		return 0
	}
	return c.v.GetInt(key)
}

var playerKeys = map[flak.PlayerOption]string{
	flak.BayLaunchInterval:    "BayLaunchInterval",
	flak.BeamFiringRange:      "BeamFiringRange",
	flak.BeamHitShipCharge:    "BeamHitShipCharge",
	flak.FighterFiringRange:   "FighterFiringRange",
	flak.FighterKillOdds:      "FighterKillOdds",
	flak.ShipMovementSpeed:    "ShipMovementSpeed",
	flak.TorpFiringRange:      "TorpFiringRange",
}

func (c *Config) GetPlayerConfiguration(opt flak.PlayerOption, player int) int {
	name, ok := playerKeys[opt]
	if !ok {
		return 0
	}
	playerKey := fmt.Sprintf("Players.%d.%s", player, name)
	if c.v.IsSet(playerKey) {
		return c.v.GetInt(playerKey)
	}
	return c.v.GetInt("Players.Default." + name)
}

var experienceKeys = map[flak.ExperienceOption]string{
	flak.BayRechargeRate:       "BayRechargeRate",
	flak.BeamRechargeRate:      "BeamRechargeRate",
	flak.TubeRechargeRate:      "TubeRechargeRate",
	flak.TorpHitOdds:           "TorpHitOdds",
	flak.BeamHitOdds:           "BeamHitOdds",
	flak.BeamHitBonus:          "BeamHitBonus",
	flak.BeamHitFighterCharge:  "BeamHitFighterCharge",
	flak.ShieldKillScaling:     "ShieldKillScaling",
	flak.ShieldDamageScaling:   "ShieldDamageScaling",
	flak.HullDamageScaling:     "HullDamageScaling",
	flak.CrewKillScaling:       "CrewKillScaling",
	flak.FighterMovementSpeed:  "FighterMovementSpeed",
	flak.FighterFiringRange2:   "FighterStrikes",
}

func (c *Config) GetExperienceConfiguration(opt flak.ExperienceOption, level, player int) int {
	name, ok := experienceKeys[opt]
	if !ok {
		return 0
	}
	playerKey := fmt.Sprintf("Experience.Players.%d.%d.%s", player, level, name)
	if c.v.IsSet(playerKey) {
		return c.v.GetInt(playerKey)
	}
	return c.v.GetInt(fmt.Sprintf("Experience.Default.%d.%s", level, name))
}

func (c *Config) GetBeamKillPower(beamType int) int {
	return c.v.GetInt(fmt.Sprintf("Weapons.Beam.%d.Kill", beamType))
}

func (c *Config) GetBeamDamagePower(beamType int) int {
	return c.v.GetInt(fmt.Sprintf("Weapons.Beam.%d.Damage", beamType))
}

func (c *Config) GetTorpedoKillPower(torpedoType int) int {
	return c.v.GetInt(fmt.Sprintf("Weapons.Torpedo.%d.Kill", torpedoType))
}

func (c *Config) GetTorpedoDamagePower(torpedoType int) int {
	return c.v.GetInt(fmt.Sprintf("Weapons.Torpedo.%d.Damage", torpedoType))
}

// GetPlayerRaceNumber returns the race controlling player, defaulting to
// race 1 for any player the config doesn't mention.
func (c *Config) GetPlayerRaceNumber(player int) int {
	key := fmt.Sprintf("Players.%d.Race", player)
	if c.v.IsSet(key) {
		return c.v.GetInt(key)
	}
	return 1
}

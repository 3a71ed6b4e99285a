package flakenv

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/flak-sim/flak/flak"
)

const sampleYAML = `
Rules:
  AllowAlternativeCombat: 1
  StandoffDistance: 3000
Players:
  Default:
    ShipMovementSpeed: 300
  3:
    ShipMovementSpeed: 450
    Race: 2
Experience:
  Default:
    2:
      BayRechargeRate: 120
  Players:
    3:
      2:
        BayRechargeRate: 200
Weapons:
  Beam:
    4:
      Kill: 12
      Damage: 30
`

func loadSample(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(sampleYAML)))
	return NewFromViper(v)
}

func TestConfigScalarAndPlayerFallback(t *testing.T) {
	cfg := loadSample(t)

	require.Equal(t, 1, cfg.GetConfiguration(flak.AllowAlternativeCombat))
	require.Equal(t, 3000, cfg.GetConfiguration(flak.StandoffDistance))

	require.Equal(t, 300, cfg.GetPlayerConfiguration(flak.ShipMovementSpeed, 1))
	require.Equal(t, 450, cfg.GetPlayerConfiguration(flak.ShipMovementSpeed, 3))
}

func TestConfigExperienceOverridesDefault(t *testing.T) {
	cfg := loadSample(t)

	require.Equal(t, 120, cfg.GetExperienceConfiguration(flak.BayRechargeRate, 2, 1))
	require.Equal(t, 200, cfg.GetExperienceConfiguration(flak.BayRechargeRate, 2, 3))
}

func TestConfigWeaponTablesAndRace(t *testing.T) {
	cfg := loadSample(t)

	require.Equal(t, 12, cfg.GetBeamKillPower(4))
	require.Equal(t, 30, cfg.GetBeamDamagePower(4))
	require.Equal(t, 1, cfg.GetPlayerRaceNumber(1))
	require.Equal(t, 2, cfg.GetPlayerRaceNumber(3))
}

package assumptions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magicslate/slate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	a := Default()
	require.NoError(t, a.Validate())

	assert.Equal(t, 7.99, a.DisneyPlusARPU)
	assert.Equal(t, 0.10, a.DiscountRate)
	assert.Equal(t, 52.0, a.PeriodsPerYear)
	assert.Equal(t, 5, a.ComparableSetSize)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
	}{
		{"negative ARPU", func(a *Assumptions) { a.DisneyPlusARPU = -1 }},
		{"zero hulu ARPU", func(a *Assumptions) { a.HuluARPU = 0 }},
		{"discount rate 1", func(a *Assumptions) { a.DiscountRate = 1.0 }},
		{"negative discount rate", func(a *Assumptions) { a.DiscountRate = -0.05 }},
		{"ad tier share above 1", func(a *Assumptions) { a.AdTierShare = 1.5 }},
		{"cannibalization above 1", func(a *Assumptions) { a.PVODCannibalizationFactor = 1.1 }},
		{"zero comparable size", func(a *Assumptions) { a.ComparableSetSize = 0 }},
		{"workhorse ROI inverted", func(a *Assumptions) { a.Workhorse.MaxROI = 0.1 }},
		{"zero tier multiple", func(a *Assumptions) {
			a.TheatricalMultipleByTier[models.BudgetTierLow] = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Default()
			tt.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, models.IsConfigurationError(err))
		})
	}
}

func TestPlatformARPU(t *testing.T) {
	a := Default()
	assert.Equal(t, a.HuluARPU, a.PlatformARPU(models.PlatformHulu))
	assert.Equal(t, a.DisneyPlusARPU, a.PlatformARPU(models.PlatformDisneyPlus))
	// Unknown platforms fall back to Disney+
	assert.Equal(t, a.DisneyPlusARPU, a.PlatformARPU(models.Platform("ESPN+")))
}

func TestBrandMultipliers_UnknownBrandIsNeutral(t *testing.T) {
	a := Default()
	assert.Equal(t, 1.5, a.AcquisitionBrandMultiplier("Marvel"))
	assert.Equal(t, 1.0, a.AcquisitionBrandMultiplier("General Entertainment"))
	assert.Equal(t, 1.8, a.TheatricalBrandMultiplier("Marvel"))
	assert.Equal(t, 1.0, a.TheatricalBrandMultiplier("FX"))
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.DiscountRate = 0.12
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.toml")
	content := []byte("discount_rate = 0.08\ncomparable_set_size = 8\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.08, a.DiscountRate)
	assert.Equal(t, 8, a.ComparableSetSize)
	// Unmentioned fields keep their defaults
	assert.Equal(t, 7.99, a.DisneyPlusARPU)
}

func TestLoad_RejectsInvalidOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.toml")
	require.NoError(t, os.WriteFile(path, []byte("discount_rate = 2.0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	a, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), a.Fingerprint())
}

package dist_test

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gozinf/domain/core"
	"gozinf/domain/dist"
	"gozinf/domain/link"
	"gozinf/internal/testkit"
)

func TestDeriveLogNormalBiasCorrection(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeLogitLog)
	p1, p2, disp := 0.4, 0.8, 0.6

	rate, err := lnk.PositiveRate(p1, p2, 0)
	require.NoError(t, err)

	// Default: the positive-part mean matches the rate.
	corrected := testkit.MustDerive(t, lnk, dist.FamilyLogNormal, p1, p2, disp, testkit.Source("ln-corrected", 1))
	assert.InDelta(t, rate, corrected.PositiveDistribution().Mean(), 1e-12)

	// Uncorrected: the positive-part median matches the rate.
	uncorrected, err := dist.DeriveUncorrected(lnk, dist.FamilyLogNormal, p1, p2, disp, testkit.Source("ln-uncorrected", 1))
	require.NoError(t, err)
	assert.InDelta(t, rate, uncorrected.PositiveDistribution().Quantile(0.5), 1e-9)
}

func TestDeriveGammaMatchesMoments(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypePoisson)
	p1, p2, disp := 0.2, 0.5, 0.9

	rate, err := lnk.PositiveRate(p1, p2, 0)
	require.NoError(t, err)

	z := testkit.MustDerive(t, lnk, dist.FamilyGamma, p1, p2, disp, testkit.Source("gamma", 2))
	pos := z.PositiveDistribution()
	assert.InDelta(t, rate, pos.Mean(), 1e-12)
	assert.InDelta(t, disp, pos.StdDev(), 1e-12)
}

func TestDeriveInverseGammaMatchesMoments(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeLogitLog)
	p1, p2, disp := -0.3, 1.1, 0.75

	rate, err := lnk.PositiveRate(p1, p2, 0)
	require.NoError(t, err)

	z := testkit.MustDerive(t, lnk, dist.FamilyInverseGamma, p1, p2, disp, testkit.Source("invgamma", 3))
	pos := z.PositiveDistribution()
	assert.InDelta(t, rate, pos.Mean(), 1e-12)
	assert.InDelta(t, disp, pos.StdDev(), 1e-9)
}

func TestDeriveInverseGaussianUsesDispersionAsShape(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeIdentity)
	p1, p2, disp := 0.5, 2.0, 1.5

	z := testkit.MustDerive(t, lnk, dist.FamilyInverseGaussian, p1, p2, disp, testkit.Source("invgauss", 4))
	pos := z.PositiveDistribution()
	assert.Equal(t, p2, pos.Mean())
	assert.InDelta(t, p2*p2*p2/disp, pos.Variance(), 1e-12)
}

func TestDeriveEncounterProbabilityComesFromLink(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypePoisson)
	p1 := 0.3

	want, err := lnk.EncounterProbability(p1)
	require.NoError(t, err)

	z := testkit.MustDerive(t, lnk, dist.FamilyGamma, p1, 0.7, 1, testkit.Source("encprob", 5))
	assert.Equal(t, want, z.EncounterDistribution().P)
}

func TestDeriveRejectsUnsupportedFamily(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeLogitLog)

	_, err := dist.Derive(lnk, dist.Family(99), 0, 1, 1, nil)
	assert.True(t, core.IsUnsupportedFamilyErr(err))
}

func TestDeriveRejectsNonPositiveDispersion(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeLogitLog)

	for _, disp := range []float64{0, -0.5, math.NaN()} {
		_, err := dist.Derive(lnk, dist.FamilyGamma, 0, 1, disp, nil)
		assert.True(t, core.IsDomainErr(err), "dispersion %v must be rejected", disp)
	}
}

func TestDerivePropagatesLinkErrors(t *testing.T) {
	lnk := testkit.MustLink(t, link.TypeIdentity)

	// Identity encounter probability outside (0,1).
	_, err := dist.Derive(lnk, dist.FamilyLogNormal, 1.2, 1, 1, nil)
	assert.True(t, core.IsDomainErr(err))

	// Non-positive rate cannot parameterize a positive family.
	_, err = dist.Derive(lnk, dist.FamilyLogNormal, 0.5, -1, 1, nil)
	assert.True(t, core.IsDomainErr(err))
}

func TestParseFamily(t *testing.T) {
	for _, fam := range []dist.Family{dist.FamilyLogNormal, dist.FamilyGamma, dist.FamilyInverseGamma, dist.FamilyInverseGaussian} {
		got, err := dist.ParseFamily(fam.String())
		require.NoError(t, err)
		assert.Equal(t, fam, got)
	}

	_, err := dist.ParseFamily("weibull")
	assert.True(t, core.IsUnsupportedFamilyErr(err))
}

func TestDerivedSamplingLawOfLargeNumbers(t *testing.T) {
	// Encounter probability 0.25 with positive-part mean 1 gives an
	// unconditional mean of 0.25.
	lnk := testkit.MustLink(t, link.TypeIdentity)
	z := testkit.MustDerive(t, lnk, dist.FamilyGamma, 0.25, 1, 0.5, testkit.Source("lln", 6))

	n := 10000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = z.Rand()
	}

	mean, err := stats.Mean(samples)
	require.NoError(t, err)

	// Three standard errors keeps the fixed-seed run clear of the boundary.
	se := z.StdDev() / math.Sqrt(float64(n))
	assert.InDelta(t, 0.25, mean, 3*se)
}

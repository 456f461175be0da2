package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/advisory"
)

func TestPregenRunCountsGeneratedAndCached(t *testing.T) {
	gen := &fakeGenerator{response: "scenario text"}
	svc, _ := newAdvisoryFixture(t, gen)
	pregen := service.NewPregenService(svc, service.PregenConfig{}, nil)

	items := []service.PregenItem{
		{Kind: advisory.KindScenario, Dimensions: testDims()},
		{Kind: advisory.KindScenario, Dimensions: testDims()}, // already cached by the first
	}
	report, err := pregen.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 1, report.Cached)
	assert.Empty(t, report.Failures)
}

func TestPregenRecordsFailuresWithoutAborting(t *testing.T) {
	gen := &fakeGenerator{response: "text"}
	svc, _ := newAdvisoryFixture(t, gen)
	pregen := service.NewPregenService(svc, service.PregenConfig{}, nil)

	invalid := advisory.NewDimensions("risk", "", "Carbon pricing", "Manufacturing", "medium")
	items := []service.PregenItem{
		{Kind: advisory.KindScenario, Dimensions: invalid},
		{Kind: advisory.KindScenario, Dimensions: testDims()},
	}
	report, err := pregen.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Generated)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, invalid, report.Failures[0].Item.Dimensions)
}

func TestPregenStopsOnCancelledContext(t *testing.T) {
	gen := &fakeGenerator{response: "text"}
	svc, _ := newAdvisoryFixture(t, gen)
	pregen := service.NewPregenService(svc, service.PregenConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := pregen.Run(ctx, []service.PregenItem{
		{Kind: advisory.KindScenario, Dimensions: testDims()},
	})
	require.Error(t, err)
	assert.Zero(t, report.Generated)
	assert.Zero(t, gen.callCount())
}

func TestMatrixExpandsAllKinds(t *testing.T) {
	tuples := []advisory.Dimensions{testDims()}
	items := service.Matrix(tuples, []string{"efficiency", "renewables"})

	// scenario + strategy + one financial per strategy type
	require.Len(t, items, 4)

	kinds := map[advisory.Kind]int{}
	for _, item := range items {
		kinds[item.Kind]++
	}
	assert.Equal(t, 1, kinds[advisory.KindScenario])
	assert.Equal(t, 1, kinds[advisory.KindStrategy])
	assert.Equal(t, 2, kinds[advisory.KindFinancial])

	for _, item := range items {
		assert.NoError(t, item.Dimensions.Validate(item.Kind))
	}
}

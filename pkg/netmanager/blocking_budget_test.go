package netmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

func TestNoneActionsRunConcurrently(t *testing.T) {
	b := &blockingBudget{}
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingNone))
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingNone))
}

func TestHardActionExcludesEverything(t *testing.T) {
	b := &blockingBudget{}
	require := assert.New(t)
	require.True(b.tryAcquireAction(vdamodel.BlockingHard))
	require.False(b.tryAcquireAction(vdamodel.BlockingNone))
	require.False(b.tryAcquireAction(vdamodel.BlockingSoft))
	require.False(b.tryAcquireNavigation())
}

func TestSoftActionExcludesNavigationOnly(t *testing.T) {
	b := &blockingBudget{}
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingSoft))
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingNone))
	assert.False(t, b.tryAcquireNavigation())
}

func TestNavigationExcludesSoftAndHard(t *testing.T) {
	b := &blockingBudget{}
	assert.True(t, b.tryAcquireNavigation())
	assert.False(t, b.tryAcquireAction(vdamodel.BlockingSoft))
	assert.False(t, b.tryAcquireAction(vdamodel.BlockingHard))
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingNone))
}

func TestReleaseFreesTheSlot(t *testing.T) {
	b := &blockingBudget{}
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingHard))
	b.releaseAction(vdamodel.BlockingHard)
	assert.True(t, b.tryAcquireAction(vdamodel.BlockingSoft))
}

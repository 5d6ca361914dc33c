package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tolga/fieldroute/internal/model"
)

func TestSplitAssetID(t *testing.T) {
	parent := model.NewAssetID("A123")
	a := model.SplitAssetID(parent, model.HalfA)
	b := model.SplitAssetID(parent, model.HalfB)

	assert.Equal(t, "A123_A", a.Code())
	assert.Equal(t, "A123_B", b.Code())
	assert.True(t, a.IsSplit())
	assert.Equal(t, "A123", a.ParentCode())
	assert.NotEqual(t, a, b)
	assert.False(t, parent.IsSplit())
}

func TestAssetIDAsMapKey(t *testing.T) {
	m := map[model.AssetID]int{}
	a := model.NewAssetID("X")
	m[a] = 1
	assert.Equal(t, 1, m[model.NewAssetID("X")])
}

func TestPatternKeyAndContains(t *testing.T) {
	p := model.Pattern{Weekdays: []int{0, 2, 4}}
	assert.Equal(t, 3, p.Frequency())
	assert.True(t, p.Contains(2))
	assert.False(t, p.Contains(1))
	assert.Equal(t, "0,2,4", p.Key())
}

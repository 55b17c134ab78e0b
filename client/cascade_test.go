package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/silsila-idreesia/portal/client"
)

type mehfilOption struct {
	ID     uint64
	ZoneID uint64
	Name   string
}

var mehfilOptions = []mehfilOption{
	{ID: 4, ZoneID: 1, Name: "Saddar"},
	{ID: 5, ZoneID: 1, Name: "Clifton"},
	{ID: 6, ZoneID: 2, Name: "Model Town"},
}

func newMehfilCascade() *client.Cascade[mehfilOption] {
	return client.NewCascade(func(o mehfilOption) any { return o.ZoneID })
}

func TestCascadeDisabledUntilParentChosen(t *testing.T) {
	cascade := newMehfilCascade()

	assert.False(t, cascade.Enabled())
	assert.Empty(t, cascade.Options(mehfilOptions))

	cascade.SetSelected(5)
	assert.Nil(t, cascade.Selected(), "selection ignored without a parent")

	cascade.SetParent(1)
	assert.True(t, cascade.Enabled())
}

func TestCascadeParentChangeClearsSelection(t *testing.T) {
	cascade := newMehfilCascade()

	cascade.SetParent(1)
	cascade.SetSelected(5)
	assert.Equal(t, 5, cascade.Selected())

	cascade.SetParent(2)
	assert.Nil(t, cascade.Selected())

	options := cascade.Options(mehfilOptions)
	assert.Len(t, options, 1)
	assert.Equal(t, uint64(6), options[0].ID)
}

func TestCascadeSameParentKeepsSelection(t *testing.T) {
	cascade := newMehfilCascade()

	cascade.SetParent(1)
	cascade.SetSelected(4)

	// The same id in string form is not a change.
	cascade.SetParent("1")
	assert.Equal(t, 4, cascade.Selected())
}

func TestCascadeOptionsMatchMixedIDForms(t *testing.T) {
	cascade := newMehfilCascade()

	cascade.SetParent("1")

	options := cascade.Options(mehfilOptions)
	assert.Len(t, options, 2)
	for _, option := range options {
		assert.Equal(t, uint64(1), option.ZoneID)
	}
}

func TestCascadeClearParent(t *testing.T) {
	cascade := newMehfilCascade()

	cascade.SetParent(2)
	cascade.SetSelected(6)

	cascade.SetParent(nil)
	assert.False(t, cascade.Enabled())
	assert.Nil(t, cascade.Selected())
	assert.Empty(t, cascade.Options(mehfilOptions))
}

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	assert := assert.New(t)

	harts := []Cpu{&fakeCpu{hartid: 0}, &fakeCpu{hartid: 1}}
	reg, err := NewRegistry(harts...)
	assert.NoError(err)
	assert.Equal(2, reg.Len())

	for hartid := range reg.Len() {
		first := reg.Get(hartid)
		second := reg.Get(hartid)
		assert.Same(first, second)
		assert.Same(harts[hartid], first)
	}

	// The registry is not affected by later changes to the caller's slice.
	harts[0] = &fakeCpu{hartid: 7}
	assert.Same(reg.Get(1), reg.Get(1))
	assert.NotSame(harts[0], reg.Get(0))

	count := 0
	for hartid, hart := range reg.All() {
		assert.Same(reg.Get(hartid), hart)
		count++
	}
	assert.Equal(2, count)
}

func TestRegistryInvalid(t *testing.T) {
	assert := assert.New(t)

	reg, err := NewRegistry(&fakeCpu{})
	assert.NoError(err)

	for _, hartid := range []int{-1, 1, 64} {
		_, err = reg.Lookup(hartid)
		assert.ErrorIs(err, ErrHartInvalid)

		var herr *ErrHart
		assert.ErrorAs(err, &herr)
		assert.Equal(hartid, herr.HartId)

		assert.Panics(func() { reg.Get(hartid) })
	}

	_, err = NewRegistry()
	assert.ErrorIs(err, ErrRegistryEmpty)

	_, err = NewRegistry(&fakeCpu{}, nil)
	assert.ErrorIs(err, ErrHartMissing)
}

func TestInstall(t *testing.T) {
	assert := assert.New(t)

	uninstall()
	defer uninstall()

	assert.Nil(Installed())
	assert.PanicsWithValue(ErrRegistryMissing, func() { Get(0) })

	reg, err := NewRegistry(&fakeCpu{}, &fakeCpu{hartid: 1})
	assert.NoError(err)

	assert.ErrorIs(Install(nil), ErrRegistryEmpty)
	assert.NoError(Install(reg))
	assert.Same(reg, Installed())

	other, err := NewRegistry(&fakeCpu{})
	assert.NoError(err)
	assert.ErrorIs(Install(other), ErrRegistryInstalled)
	assert.Same(reg, Installed())

	assert.Same(reg.Get(1), Get(1))
	assert.Panics(func() { Get(2) })
}

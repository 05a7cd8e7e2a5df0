package clint

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/interrupt"
)

func TestClintUninitialized(t *testing.T) {
	assert := assert.New(t)

	clk := clock.NewMock()
	cl := NewClint(2, 1_000_000, clk)

	clk.Add(time.Second)

	assert.False(cl.Initialized())
	assert.Equal(uint64(0), cl.Mtime())
	assert.ErrorIs(cl.SetMtimecmp(0, 10), interrupt.ErrUninitialized)
	assert.ErrorIs(cl.SetMsip(1, true), interrupt.ErrUninitialized)
	_, err := cl.Msip(1)
	assert.ErrorIs(err, interrupt.ErrUninitialized)
	assert.False(cl.Pending(0, interrupt.TimerID))
}

func TestClintMtime(t *testing.T) {
	assert := assert.New(t)

	clk := clock.NewMock()
	cl := NewClint(2, 1_000_000, clk)

	// Time before Init does not count.
	clk.Add(time.Hour)
	cl.Init()
	assert.True(cl.Initialized())
	assert.Equal(uint64(0), cl.Mtime())

	clk.Add(time.Millisecond)
	assert.Equal(uint64(1000), cl.Mtime())

	// A second Init does not restart mtime.
	cl.Init()
	assert.Equal(uint64(1000), cl.Mtime())

	cl.Reset()
	assert.False(cl.Initialized())
	assert.Equal(uint64(0), cl.Mtime())
}

func TestClintTimerPending(t *testing.T) {
	assert := assert.New(t)

	clk := clock.NewMock()
	cl := NewClint(2, 1_000_000, clk)
	cl.Init()

	assert.False(cl.Pending(0, interrupt.TimerID))
	assert.False(cl.Pending(1, interrupt.TimerID))

	assert.NoError(cl.SetMtimecmp(0, 1500))
	value, err := cl.Mtimecmp(0)
	assert.NoError(err)
	assert.Equal(uint64(1500), value)

	clk.Add(time.Millisecond)
	assert.False(cl.Pending(0, interrupt.TimerID))

	clk.Add(time.Millisecond)
	assert.True(cl.Pending(0, interrupt.TimerID))
	assert.False(cl.Pending(1, interrupt.TimerID))

	// Moving the compare forward clears the pending timer.
	assert.NoError(cl.SetMtimecmp(0, cl.Mtime()+1000))
	assert.False(cl.Pending(0, interrupt.TimerID))
}

func TestClintMsip(t *testing.T) {
	assert := assert.New(t)

	cl := NewClint(2, 1_000_000, clock.NewMock())
	cl.Init()

	assert.NoError(cl.SetMsip(1, true))

	pending, err := cl.Msip(1)
	assert.NoError(err)
	assert.True(pending)
	assert.True(cl.Pending(1, interrupt.SoftwareID))

	pending, err = cl.Msip(0)
	assert.NoError(err)
	assert.False(pending)

	assert.NoError(cl.SetMsip(1, false))
	pending, err = cl.Msip(1)
	assert.NoError(err)
	assert.False(pending)
	assert.False(cl.Pending(1, interrupt.SoftwareID))
}

func TestClintHartInvalid(t *testing.T) {
	assert := assert.New(t)

	cl := NewClint(2, 1_000_000, clock.NewMock())
	cl.Init()

	for _, hartid := range []int{-1, 2} {
		assert.ErrorIs(cl.SetMsip(hartid, true), cpu.ErrHartInvalid)
		_, err := cl.Msip(hartid)
		assert.ErrorIs(err, cpu.ErrHartInvalid)
		assert.ErrorIs(cl.SetMtimecmp(hartid, 0), cpu.ErrHartInvalid)
		_, err = cl.Mtimecmp(hartid)
		assert.ErrorIs(err, cpu.ErrHartInvalid)
		_, err = cl.Port(hartid, &recordController{})
		assert.ErrorIs(err, cpu.ErrHartInvalid)
		assert.False(cl.Pending(hartid, interrupt.SoftwareID))
	}
}

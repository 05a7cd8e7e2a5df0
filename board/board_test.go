package board

import (
	"io"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mee/cpu"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	clk := clock.NewMock()
	bd, err := New(Default(), clk)
	require.NoError(t, err)

	assert.Len(bd.Harts, 2)
	assert.Equal(2, bd.Registry.Len())
	for hartid, hart := range bd.Registry.All() {
		assert.Same(bd.Harts[hartid], hart)
		assert.Same(hart, bd.Registry.Get(hartid))
	}

	// Nothing works until the controllers are initialized.
	hart := bd.Registry.Get(0)
	clk.Add(time.Second)
	assert.Equal(uint64(0), hart.Mtime())
	assert.ErrorIs(hart.SetIPI(1), cpu.ErrControllerUninitialized)

	bd.Init()
	clk.Add(time.Second)
	assert.Equal(bd.Timebase, hart.Mtime())

	_, err = New(Config{}, clk)
	assert.ErrorIs(err, ErrValueRange)
}

func TestBoardIPI(t *testing.T) {
	assert := assert.New(t)

	bd, err := New(Default(), clock.NewMock())
	require.NoError(t, err)
	bd.Init()

	received := map[int]int{}
	for hartid, hart := range bd.Registry.All() {
		sw := hart.SoftwareInterruptController()
		assert.NoError(sw.RegisterHandler(hart.SoftwareInterruptID(), func(id int, data any) {
			received[hartid]++
			assert.NoError(hart.ClearIPI(hartid))
		}, nil))
		assert.NoError(sw.Enable(hart.SoftwareInterruptID()))
	}

	assert.NoError(bd.Registry.Get(0).SetIPI(1))
	assert.Equal(1, bd.Poll())
	assert.Equal(map[int]int{1: 1}, received)
	assert.Equal(0, bd.Poll())
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{Base: 0x8000_0000, Data: make([]byte, 8)}

	n, err := mem.WriteAt([]byte{1, 2, 3}, 0x8000_0002)
	assert.NoError(err)
	assert.Equal(3, n)

	buf := make([]byte, 4)
	n, err = mem.ReadAt(buf, 0x8000_0001)
	assert.NoError(err)
	assert.Equal(4, n)
	assert.Equal([]byte{0, 1, 2, 3}, buf)

	n, err = mem.ReadAt(buf, 0x8000_0006)
	assert.ErrorIs(err, io.EOF)
	assert.Equal(2, n)

	_, err = mem.ReadAt(buf, 0x7fff_ffff)
	assert.ErrorIs(err, ErrAddress)
	_, err = mem.ReadAt(buf, 0x8000_0009)
	assert.ErrorIs(err, ErrAddress)

	_, err = mem.WriteAt(buf, 0x8000_0006)
	assert.ErrorIs(err, io.ErrShortWrite)

	// The first byte past the end is outside memory.
	_, err = mem.ReadAt(buf, 0x8000_0008)
	assert.ErrorIs(err, ErrAddress)
	_, err = mem.WriteAt(buf, 0x8000_0008)
	assert.ErrorIs(err, ErrAddress)

	n, err = mem.ReadAt(nil, 0x8000_0008)
	assert.NoError(err)
	assert.Equal(0, n)
}

func TestBoardException(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	bd, err := New(cfg, clock.NewMock())
	require.NoError(t, err)
	bd.Init()

	// ecall, then c.nop
	_, err = bd.Memory.WriteAt([]byte{0x73, 0x00, 0x00, 0x00, 0x01, 0x00}, int64(cfg.MemoryBase))
	assert.NoError(err)

	hart := bd.Harts[1]
	assert.NoError(hart.RegisterException(cpu.ECODE_ECALL_M, func(ctx *cpu.ExceptionContext, ecode cpu.ExceptionCode) {
		assert.NoError(ctx.Skip())
	}))

	resume, err := hart.Trap(cpu.ECODE_ECALL_M, uintptr(cfg.MemoryBase))
	assert.NoError(err)
	assert.Equal(uintptr(cfg.MemoryBase+4), resume)

	length, err := hart.InstructionLength(resume)
	assert.NoError(err)
	assert.Equal(2, length)
}

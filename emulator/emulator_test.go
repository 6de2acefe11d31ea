package emulator_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/assembunny/cpu"
	"github.com/ezrec/assembunny/emulator"
)

func assemble(program ...string) *cpu.Program {
	prog, err := cpu.ParseString(strings.Join(program, "\n"))
	Expect(err).NotTo(HaveOccurred())
	return prog
}

// clock emits 0,1,0,1... only when a is 3, and 0,0,0... otherwise.
var clock = []string{
	"cpy a b",
	"dec b",
	"dec b",
	"dec b",
	"jnz b 4",
	"out 0",
	"out 1",
	"jnz 1 -2",
	"out 0",
	"jnz 1 -1",
}

var _ = Describe("Emulator", func() {
	var emu *emulator.Emulator

	Context("Running to halt", func() {
		It("should compute the register result", func() {
			emu = emulator.NewEmulator(assemble(
				"cpy 41 a",
				"inc a",
				"inc a",
				"dec a",
				"jnz a 2",
				"dec a",
			))
			cp, err := emu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cp.Halted()).To(BeTrue())
			Expect(cp.Get(cpu.REG_A)).To(Equal(int64(42)))
		})

		It("should apply presets at boot", func() {
			emu = emulator.NewEmulator(assemble(
				"cpy c a",
				"inc a",
			))
			emu.Preset[cpu.REG_C] = 1
			cp, err := emu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cp.Get(cpu.REG_A)).To(Equal(int64(2)))
			Expect(cp.Get(cpu.REG_C)).To(Equal(int64(1)))
		})

		It("should run self-modifying programs", func() {
			emu = emulator.NewEmulator(assemble(
				"cpy 2 a",
				"tgl a",
				"tgl a",
				"tgl a",
				"cpy 1 a",
				"dec a",
				"dec a",
			))
			cp, err := emu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cp.Get(cpu.REG_A)).To(Equal(int64(3)))

			// Every run starts from the unmodified listing.
			cp, err = emu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cp.Get(cpu.REG_A)).To(Equal(int64(3)))
		})

		It("should stop at the tick budget", func() {
			emu = emulator.NewEmulator(assemble(
				"inc a",
				"jnz 1 -1",
			))
			emu.MaxTicks = 100
			cp, err := emu.Run()
			Expect(err).To(HaveOccurred())

			var limit *emulator.ErrTickLimit
			Expect(err).To(BeAssignableToTypeOf(limit))
			limit = err.(*emulator.ErrTickLimit)
			Expect(limit.Ticks).To(Equal(100))
			Expect(cp.Halted()).To(BeFalse())
			Expect(cp.Get(cpu.REG_A)).To(Equal(int64(50)))
		})
	})

	Context("Pulling outputs", func() {
		It("should stop when the program halts", func() {
			emu = emulator.NewEmulator(assemble(
				"out 5",
				"out a",
				"out 6",
			))
			emu.Preset[cpu.REG_A] = -2
			values, err := emu.Take(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal([]int64{5, -2, 6}))
		})

		It("should bound endless programs by count", func() {
			emu = emulator.NewEmulator(assemble(clock...))
			emu.Preset[cpu.REG_A] = 3
			values, err := emu.Take(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal([]int64{0, 1, 0, 1, 0}))
		})

		It("should report a silent loop that exhausts the budget", func() {
			emu = emulator.NewEmulator(assemble(
				"out 1",
				"jnz 1 0",
			))
			emu.MaxTicks = 50
			values, err := emu.Take(3)
			Expect(values).To(Equal([]int64{1}))
			Expect(err).To(BeAssignableToTypeOf(&emulator.ErrTickLimit{}))
		})

		It("should take nothing for zero", func() {
			emu = emulator.NewEmulator(assemble(clock...))
			values, err := emu.Take(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(BeEmpty())
		})
	})

	Context("Searching for a clock", func() {
		BeforeEach(func() {
			emu = emulator.NewEmulator(assemble(clock...))
		})

		It("should find the smallest alternating seed", func() {
			seed, err := emu.FindClock(cpu.REG_A, 10, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(seed).To(Equal(int64(3)))

			// The search leaves the caller's presets alone.
			Expect(emu.Preset).To(BeEmpty())
		})

		It("should fail below the seed", func() {
			_, err := emu.FindClock(cpu.REG_A, 10, 3)
			Expect(err).To(MatchError(emulator.ErrClockNotFound))
		})

		It("should skip seeds that exhaust the budget", func() {
			emu = emulator.NewEmulator(assemble(
				"jnz a 2",
				"jnz 1 0",
				"out 0",
				"out 1",
				"jnz 1 -2",
			))
			emu.MaxTicks = 1000
			seed, err := emu.FindClock(cpu.REG_A, 20, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(seed).To(Equal(int64(1)))
		})

		It("should reject programs that halt early", func() {
			emu = emulator.NewEmulator(assemble(
				"out 0",
				"out 1",
			))
			_, err := emu.FindClock(cpu.REG_A, 4, 5)
			Expect(err).To(MatchError(emulator.ErrClockNotFound))
		})
	})
})

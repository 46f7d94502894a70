// Package log provides module-scoped logging on top of logrus. Each
// subsystem owns a Module constant; debug-level logging is gated per
// module so hot paths (CPU/PPU) pay no cost when their module is disabled.
package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

type Module uint
type ModuleMask uint64

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModEmu Module = iota
	ModCPU
	ModPPU
	ModSound
	ModMem
	ModDMA
	ModInput
	ModMapper

	endStandardMods
)

var modCount = endStandardMods

var modNames = []string{
	"emu", "cpu", "ppu", "sound", "mem", "dma", "input", "mapper",
}

var modDebugMask ModuleMask

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return 0, false
}

func ModuleNames() []string {
	return modNames
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
	logrus.SetLevel(logrus.DebugLevel)
}
func DisableDebugModules(mask ModuleMask) { modDebugMask &^= mask }
func Disable()                           { modDebugMask = 0 }

func (m Module) Mask() ModuleMask { return 1 << ModuleMask(m) }

func (m Module) Enabled(lvl Level) bool {
	return lvl <= WarnLevel || modDebugMask&m.Mask() != 0
}

func (m Module) entry() *logrus.Entry {
	return logrus.StandardLogger().WithField("mod", modNames[m])
}

func (m Module) Debugf(format string, args ...any) {
	if m.Enabled(DebugLevel) {
		m.entry().Debugf(format, args...)
	}
}

func (m Module) Infof(format string, args ...any) {
	if m.Enabled(InfoLevel) {
		m.entry().Infof(format, args...)
	}
}

func (m Module) Warnf(format string, args ...any) {
	if m.Enabled(WarnLevel) {
		m.entry().Warnf(format, args...)
	}
}

func (m Module) Errorf(format string, args ...any) {
	if m.Enabled(ErrorLevel) {
		m.entry().Errorf(format, args...)
	}
}

func (m Module) Fatalf(format string, args ...any) {
	m.entry().Fatalf(format, args...)
}

// WithFields starts a structured log entry for this module, mirroring
// logrus's WithFields. It is not gated on the module's debug mask.
func (m Module) WithFields(fields map[string]any) *logrus.Entry {
	return m.entry().WithFields(logrus.Fields(fields))
}

package domain

import "strings"

// Family identifies a toolchain family.
type Family string

const (
	// FamilyAVR is the 8-bit AVR toolchain (avr-gcc).
	FamilyAVR Family = "avr"
	// FamilyARM is the ARM Cortex-M toolchain (arm-none-eabi-gcc).
	FamilyARM Family = "arm"
	// FamilyESP32 is the Xtensa ESP32 toolchain.
	FamilyESP32 Family = "esp32"
	// FamilyESP8266 is the Xtensa LX106 toolchain.
	FamilyESP8266 Family = "esp8266"
	// FamilyRISCV is the RISC-V ESP toolchain.
	FamilyRISCV Family = "riscv"
)

// VersionPlaceholder is substituted with the GCC version in standard include templates.
const VersionPlaceholder = "{version}"

// ArchitectureProfile describes how to locate headers and probe defines for one toolchain family.
type ArchitectureProfile struct {
	Family Family
	// PathMarker is the substring identifying the family in a compiler path.
	PathMarker string
	// CompilerMarker is the C++ compiler executable name found in build traces.
	CompilerMarker string
	// Triple is the target triple naming the toolchain's lib/gcc subdirectory.
	Triple string
	// GCCVersion pins the version directory. Empty means it is discovered on disk.
	GCCVersion string
	// StandardIncludes are toolchain-root-relative directories; entries holding
	// VersionPlaceholder are dropped when no version is known.
	StandardIncludes []string
	// ProbeHeaders are included when dumping hardware macros.
	ProbeHeaders []string
	// IntelliSenseMode is the editor mode tag.
	IntelliSenseMode string
	// DefaultMCU is passed as -mmcu when the trace names none. Empty disables the flag.
	DefaultMCU string
}

// BaselineHeaders are the generic headers of the baseline macro pass.
var BaselineHeaders = []string{"stdint.h", "stdlib.h", "string.h", "stdio.h"}

var gnuLayout = []string{
	"{triple}/include",
	"{triple}/include/c++/{version}",
	"{triple}/include/c++/{version}/{triple}",
	"lib/gcc/{triple}/{version}/include",
	"lib/gcc/{triple}/{version}/include-fixed",
}

// profiles is in resolution priority order; the last row is the fallback.
var profiles = []ArchitectureProfile{
	{
		Family:           FamilyARM,
		PathMarker:       "arm-none-eabi",
		CompilerMarker:   "arm-none-eabi-g++",
		Triple:           "arm-none-eabi",
		StandardIncludes: gnuLayout,
		ProbeHeaders:     []string{"Arduino.h"},
		IntelliSenseMode: "gcc-arm",
	},
	{
		Family:           FamilyESP32,
		PathMarker:       "xtensa-esp32-elf",
		CompilerMarker:   "xtensa-esp32-elf-g++",
		Triple:           "xtensa-esp32-elf",
		StandardIncludes: gnuLayout,
		ProbeHeaders:     []string{"Arduino.h", "sdkconfig.h"},
		IntelliSenseMode: "gcc-x86",
	},
	{
		Family:           FamilyESP8266,
		PathMarker:       "xtensa-lx106-elf",
		CompilerMarker:   "xtensa-lx106-elf-g++",
		Triple:           "xtensa-lx106-elf",
		StandardIncludes: gnuLayout,
		ProbeHeaders:     []string{"Arduino.h", "core_esp8266_features.h"},
		IntelliSenseMode: "gcc-x86",
	},
	{
		Family:           FamilyRISCV,
		PathMarker:       "riscv32-esp-elf",
		CompilerMarker:   "riscv32-esp-elf-g++",
		Triple:           "riscv32-esp-elf",
		StandardIncludes: gnuLayout,
		ProbeHeaders:     []string{"Arduino.h", "sdkconfig.h"},
		IntelliSenseMode: "gcc-x86",
	},
	{
		Family:         FamilyAVR,
		PathMarker:     "avr",
		CompilerMarker: "avr-g++",
		Triple:         "avr",
		GCCVersion:     "7.3.0",
		StandardIncludes: []string{
			"avr/include",
			"lib/gcc/avr/{version}/include",
			"lib/gcc/avr/{version}/include-fixed",
		},
		ProbeHeaders:     []string{"avr/io.h"},
		IntelliSenseMode: "gcc-x86",
		DefaultMCU:       "atmega328p",
	},
}

// Profiles returns the static profile table in resolution priority order.
func Profiles() []ArchitectureProfile {
	out := make([]ArchitectureProfile, len(profiles))
	copy(out, profiles)
	return out
}

// IntelliSenseMode returns the editor mode tag of the family.
// Unknown families use the fallback profile's tag.
func (f Family) IntelliSenseMode() string {
	for _, p := range profiles {
		if p.Family == f {
			return p.IntelliSenseMode
		}
	}
	return profiles[len(profiles)-1].IntelliSenseMode
}

// CompilerMarkers returns the compiler executable names of every family.
func CompilerMarkers() []string {
	markers := make([]string, len(profiles))
	for i, p := range profiles {
		markers[i] = p.CompilerMarker
	}
	return markers
}

// ResolveProfile selects the profile for a compiler path.
// Every path resolves: paths matching no family fall back to AVR.
func ResolveProfile(compilerPath string) ArchitectureProfile {
	fallback := profiles[len(profiles)-1]
	for _, p := range profiles[:len(profiles)-1] {
		if strings.Contains(compilerPath, p.PathMarker) {
			return p
		}
	}
	return fallback
}

// ArchFlags returns the architecture flags of the hardware macro pass.
func (p ArchitectureProfile) ArchFlags(mcu string) []string {
	if p.DefaultMCU == "" {
		return nil
	}
	if mcu == "" {
		mcu = p.DefaultMCU
	}
	return []string{"-mmcu=" + mcu}
}

// ProbeSource returns the translation unit used to dump hardware macros.
func (p ArchitectureProfile) ProbeSource() string {
	return includeSource(p.ProbeHeaders)
}

// BaselineSource returns the translation unit used to dump generic macros.
func BaselineSource() string {
	return includeSource(BaselineHeaders)
}

// IncludeTemplates returns StandardIncludes with the triple substituted.
func (p ArchitectureProfile) IncludeTemplates() []string {
	out := make([]string, len(p.StandardIncludes))
	for i, tmpl := range p.StandardIncludes {
		out[i] = strings.ReplaceAll(tmpl, "{triple}", p.Triple)
	}
	return out
}

func includeSource(headers []string) string {
	var b strings.Builder
	for _, h := range headers {
		b.WriteString("#include <")
		b.WriteString(h)
		b.WriteString(">\n")
	}
	return b.String()
}

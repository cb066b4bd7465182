package platform

// Matrix enumerates Settings over lists of OS, Arch and build type spellings.
// An empty list uses every known value (Debug and Release for build types).
type Matrix struct {
	OS        []string
	Arch      []string
	BuildType []string
}

var (
	allOS         = []string{Windows.String(), Android.String(), Macos.String(), Linux.String()}
	allArch       = []string{X86_64.String(), ARMv8.String(), ARMv7.String(), X86.String()}
	allBuildTypes = []string{"Debug", "Release"}
)

func (m *Matrix) layers() [][]string {
	or := func(vals, def []string) []string {
		if len(vals) == 0 {
			return def
		}
		return vals
	}
	return [][]string{or(m.OS, allOS), or(m.Arch, allArch), or(m.BuildType, allBuildTypes)}
}

// Combinations returns the cartesian product of the matrix, OS varying
// slowest and build type fastest.
func (m *Matrix) Combinations() []Settings {
	combos := cartesian(m.layers())
	result := make([]Settings, 0, len(combos))
	for _, c := range combos {
		result = append(result, New(c[0], c[1], c[2]))
	}
	return result
}

// CombinationCount returns the number of combinations.
func (m *Matrix) CombinationCount() int {
	count := 1
	for _, l := range m.layers() {
		count *= len(l)
	}
	return count
}

// cartesian builds the product layer by layer.
func cartesian(layers [][]string) [][]string {
	result := [][]string{{}}
	for _, values := range layers {
		next := make([][]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				combo := make([]string, len(prev), len(prev)+1)
				copy(combo, prev)
				next = append(next, append(combo, v))
			}
		}
		result = next
	}
	return result
}

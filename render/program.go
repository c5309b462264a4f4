package render

// ProgramRegistry holds one linked shader program per cross-section model
// kind. Programs are compiled on first demand and reused by every
// instance of that kind afterwards, never recompiled.
//
// All methods must run on the GL thread; the registry relies on the
// single-threaded GL precondition rather than locking.
type ProgramRegistry struct {
	programs map[string]uint32
}

// NewProgramRegistry returns an empty registry.
func NewProgramRegistry() *ProgramRegistry {
	return &ProgramRegistry{programs: make(map[string]uint32)}
}

// SharedPrograms is the process-wide default registry. Cross-sections use
// it unless constructed with WithPrograms.
var SharedPrograms = NewProgramRegistry()

// Ensure returns the program for kind, compiling and linking the sources
// on the first request for that kind.
func (r *ProgramRegistry) Ensure(kind, vertexSource, fragmentSource string) (uint32, error) {
	if program, ok := r.programs[kind]; ok {
		return program, nil
	}
	program, err := buildProgram(vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}
	r.programs[kind] = program
	return program, nil
}

// Has reports whether a program has been built for kind.
func (r *ProgramRegistry) Has(kind string) bool {
	_, ok := r.programs[kind]
	return ok
}

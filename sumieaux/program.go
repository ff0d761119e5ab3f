package sumieaux

import "github.com/soypat/sumie/style"

// stageProgram owns the shading program of the last built stage. Programs are
// rebuilt only when the requested stage differs from the last one built.
type stageProgram[P any] struct {
	compile func(style.Stage) (P, error)
	release func(P)

	built    style.Stage
	hasBuilt bool
	ok       bool // Last compile succeeded and prog is owned.
	prog     P
}

// Ensure returns the program for stage, compiling it if the stage changed.
// A compile error is returned only by the call that attempted the compile;
// later calls for the same stage report ok=false with a nil error.
func (sp *stageProgram[P]) Ensure(stage style.Stage) (prog P, ok bool, err error) {
	if sp.hasBuilt && sp.built == stage {
		return sp.prog, sp.ok, nil
	}
	sp.Close()
	sp.prog, err = sp.compile(stage)
	sp.built = stage
	sp.hasBuilt = true
	sp.ok = err == nil
	return sp.prog, sp.ok, err
}

// Close releases the owned program, if any.
func (sp *stageProgram[P]) Close() {
	if sp.ok && sp.release != nil {
		sp.release(sp.prog)
	}
	sp.ok = false
	var zero P
	sp.prog = zero
}

//go:build !(js && wasm)

package mount

type stubBinding struct{}

// NewBinding returns a binding for targets without a DOM. Tasks built on it
// return ErrUnsupported without doing anything.
func NewBinding() Binding {
	return stubBinding{}
}

func (stubBinding) Capable() bool { return false }

func (stubBinding) Ready() error { return ErrUnsupported }

func (stubBinding) Existing(string) (Instance, bool) { return nil, false }

func (stubBinding) Init(string, int, int) (Instance, error) { return nil, ErrUnsupported }

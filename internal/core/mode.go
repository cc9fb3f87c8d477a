package core

type Mode int

const (
	ModeProd Mode = iota
	ModeDev
)

func (m Mode) String() string {
	if m == ModeDev {
		return "dev"
	}
	return "prod"
}

// Runtime selects which client code renders the chart after hydration.
type Runtime string

const (
	RuntimeScript Runtime = "script"
	RuntimeWasm   Runtime = "wasm"
)

func (r Runtime) Valid() bool {
	return r == RuntimeScript || r == RuntimeWasm
}

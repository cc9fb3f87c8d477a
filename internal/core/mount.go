package core

// MountConfig is handed to the wasm client through the page as
// window.chartmountConfig.
type MountConfig struct {
	ContainerID    string `json:"containerId"`
	ContainerClass string `json:"containerClass"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ReportURL      string `json:"reportUrl"`
	WasmURL        string `json:"wasmUrl"`
}

const (
	ReportPath  = "/api/chart/failures"
	OptionPath  = "/api/chart/option"
	AssetPrefix = "/pkg/"
)

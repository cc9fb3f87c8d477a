package http

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/chartmount/internal/core"
)

// AssetHandler serves files under /pkg/. The stylesheet comes from the embedded
// filesystem in prod and from devDir on disk in dev. The wasm client is a build
// artifact and is always read from wasmDir.
type AssetHandler struct {
	static  fs.FS
	devDir  string
	wasmDir string
	wasm    map[string]bool
	isDev   bool
}

func NewAssetHandler(static fs.FS, devDir, wasmDir string, wasmFiles []string, isDev bool) http.Handler {
	wasm := make(map[string]bool, len(wasmFiles))
	for _, name := range wasmFiles {
		wasm[name] = true
	}
	return &AssetHandler{
		static:  static,
		devDir:  devDir,
		wasmDir: wasmDir,
		wasm:    wasm,
		isDev:   isDev,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, core.AssetPrefix)
	path = strings.TrimPrefix(path, "/")
	if path == "" || core.ValidateAssetPath("/"+path) != nil {
		http.NotFound(w, req)
		return
	}

	switch {
	case h.wasm[path]:
		h.serveFromDisk(w, req, h.wasmDir, path)
	case h.isDev:
		h.serveFromDisk(w, req, h.devDir, path)
	default:
		h.serveFromEmbed(w, req, path)
	}
}

func (h *AssetHandler) serveFromDisk(w http.ResponseWriter, req *http.Request, dir, path string) {
	fullPath := filepath.Join(dir, filepath.FromSlash(path))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	w.Header().Set("Content-Type", core.GetContentType(path))
	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}

func (h *AssetHandler) serveFromEmbed(w http.ResponseWriter, req *http.Request, path string) {
	data, err := fs.ReadFile(h.static, path)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", core.GetContentType(path))
	_, _ = w.Write(data)
}

package chartmount

import (
	"bytes"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/page"
)

// Export writes the home page, the not-found page and the stylesheet into dir
// so the site can be served by any static host. With the wasm runtime the client
// module and wasm_exec.js are copied from the wasm directory as well. It returns
// the written paths.
// Files go through the app's FileSystem, the local disk unless WithFileSystem
// says otherwise.
func (a *App) Export(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("missing export directory")
	}

	home, err := a.page.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to render home page: %w", err)
	}

	var notFound bytes.Buffer
	if err := page.RenderError(&notFound, core.NewErrorData(false, core.NotFound)); err != nil {
		return nil, fmt.Errorf("failed to render not-found page: %w", err)
	}

	files := map[string][]byte{
		"index.html": []byte(home),
		"404.html":   notFound.Bytes(),
	}

	err = fs.WalkDir(a.static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(a.static, path)
		if err != nil {
			return err
		}
		files[filepath.Join(filepath.FromSlash(core.AssetPrefix[1:]), filepath.FromSlash(path))] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read static assets: %w", err)
	}

	if a.config.Chart.Runtime == core.RuntimeWasm {
		wasmDir := os.DirFS(a.config.Chart.WasmDir)
		for _, name := range []string{page.WasmFile, page.WasmExecFile} {
			data, err := fs.ReadFile(wasmDir, name)
			if err != nil {
				return nil, fmt.Errorf("missing wasm artifact %s in %s: %w", name, a.config.Chart.WasmDir, err)
			}
			files[filepath.Join(filepath.FromSlash(core.AssetPrefix[1:]), name)] = data
		}
	}

	written := make([]string, 0, len(files))
	for _, name := range sortedKeys(files) {
		target := filepath.Join(dir, name)
		if err := a.files.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, err
		}
		if err := a.files.WriteFile(target, files[name], 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}

	a.logger.Info("exported static site", "dir", dir, "files", len(written))
	return written, nil
}

func sortedKeys(m map[string][]byte) []string {
	return slices.Sorted(maps.Keys(m))
}

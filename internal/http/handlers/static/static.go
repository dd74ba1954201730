// Package static раздаёт файлы фронтенда из каталога на диске.
// Пути, которым не соответствует файл, получают index.html.
package static

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/magabrotheeeer/mayukh-auth/internal/lib/sl"
)

const indexFile = "index.html"

// Handler раздаёт статические файлы с откатом на index.html.
type Handler struct {
	log   *slog.Logger
	root  string
	files http.Handler
}

// New создаёт Handler для каталога dir.
func New(log *slog.Logger, dir string) *Handler {
	return &Handler{
		log:   log,
		root:  dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.static"

	name := path.Clean("/" + r.URL.Path)
	if name != "/" && !strings.HasPrefix(path.Base(name), ".") {
		info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(name)))
		if err == nil && !info.IsDir() {
			h.files.ServeHTTP(w, r)
			return
		}
	}

	index := filepath.Join(h.root, indexFile)
	f, err := os.Open(index)
	if err != nil {
		h.log.Warn("index file is not available", sl.Op(op), slog.String("path", index), sl.Err(err))
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		h.log.Error("failed to stat index file", sl.Op(op), sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, indexFile, info.ModTime(), f)
}

package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/kyoko-docs/kanban/internal/board"
	"github.com/kyoko-docs/kanban/internal/config"
	"github.com/kyoko-docs/kanban/internal/httpmw"
	"github.com/kyoko-docs/kanban/internal/iteration"
	"github.com/kyoko-docs/kanban/internal/storage"
	"github.com/kyoko-docs/kanban/internal/task"
	staticfiles "github.com/kyoko-docs/kanban/static"
	"github.com/kyoko-docs/kanban/ui/page"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Server.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	kv, err := storage.NewFileKV(filepath.Join(opts.DataDir, "board"))
	if err != nil {
		return nil, err
	}
	adapter := storage.NewAdapter(kv, opts.Logger)

	// Populate stores from the durable slot before the first request.
	tasks := task.NewStore()
	settings := iteration.NewSettings()
	savedTasks, savedIteration := adapter.Load()
	tasks.Replace(savedTasks)
	settings.ReplaceAll(savedIteration)

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "kanban",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	boardHandler := board.NewHandler(tasks, settings, adapter)
	mux.HandleFunc("/api/board/state", boardHandler.GetState)
	mux.HandleFunc("/api/board/cmd", boardHandler.Command)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, _, err := kv.Get(storage.BoardKey); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "board storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "kanban",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/", templ.Handler(page.BoardPage(opts.Config.UI.BoardTitle, opts.Config.UI.WorkloadUnit)))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

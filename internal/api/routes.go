// Package api provides HTTP handlers for the gene expression server.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"github.com/bmaharathi/zombiegene/internal/render"
	"github.com/bmaharathi/zombiegene/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// tableCSVFilename names the per-selection table export.
const tableCSVFilename = "gene_expression_table.csv"

// RouterConfig contains router configuration.
type RouterConfig struct {
	Service          *service.ExpressionService
	Renderer         *render.Renderer
	CORSOrigins      []string
	Title            string
	Logo             Logo
	DownloadFilename string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	if cfg.DownloadFilename == "" {
		cfg.DownloadFilename = dataset.DownloadFilename
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", indexHandler(cfg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/genes", genesHandler(cfg.Service))
		r.Get("/modes", modesHandler)
		r.Get("/series", seriesHandler(cfg.Service))
		r.Get("/table", tableHandler(cfg.Service))
		r.Get("/table.csv", tableCSVHandler(cfg.Service))
		r.Get("/chart.png", chartImageHandler(cfg.Service, cfg.Renderer))
		r.Get("/table.png", tableImageHandler(cfg.Service, cfg.Renderer))
		r.Get("/download", downloadHandler(cfg.Service.Store(), cfg.DownloadFilename))
		r.Get("/logo", logoHandler(cfg.Logo))
	})

	return r
}

// isEmpty reports whether err is the empty-selection signal.
func isEmpty(err error) bool {
	return errors.Is(err, service.ErrNoRecords)
}

type emptyResponse struct {
	Empty   bool   `json:"empty"`
	Message string `json:"message"`
}

type seriesResponse struct {
	Mode      service.Mode    `json:"mode"`
	TimeAxis  []int           `json:"time_axis"`
	Points    []service.Point `json:"points"`
	Undefined []string        `json:"undefined"`
}

type modeResponse struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func setAttachment(w http.ResponseWriter, filename string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	} else {
		w.Header().Set("Content-Disposition", "attachment")
	}
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

func genesHandler(svc *service.ExpressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Options())
	}
}

func modesHandler(w http.ResponseWriter, r *http.Request) {
	response := make([]modeResponse, len(service.Modes))
	for i, m := range service.Modes {
		response[i] = modeResponse{Code: m.Code(), Name: m.String(), Label: m.Label()}
	}
	writeJSON(w, response)
}

func seriesHandler(svc *service.ExpressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), svc.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Series(sel)
		if isEmpty(err) {
			writeJSON(w, emptyResponse{Empty: true, Message: service.EmptyMessage})
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, seriesResponse{
			Mode:      res.Mode,
			TimeAxis:  dataset.TimeAxis[:],
			Points:    res.Points,
			Undefined: res.Undefined,
		})
	}
}

func tableHandler(svc *service.ExpressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), svc.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		table, err := svc.Table(sel)
		if isEmpty(err) {
			writeJSON(w, emptyResponse{Empty: true, Message: service.EmptyMessage})
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, table)
	}
}

func tableCSVHandler(svc *service.ExpressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), svc.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		table, err := svc.Table(sel)
		if isEmpty(err) {
			http.Error(w, service.EmptyMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := table.WriteCSV(&buf); err != nil {
			log.Printf("[API] failed to write table csv: %v", err)
			http.Error(w, "failed to write table", http.StatusInternalServerError)
			return
		}
		setAttachment(w, tableCSVFilename)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

func chartImageHandler(svc *service.ExpressionService, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), svc.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var data []byte
		res, err := svc.Series(sel)
		switch {
		case isEmpty(err):
			cfg := renderer.Config()
			data, err = renderer.RenderPlaceholder(service.EmptyMessage, cfg.ChartWidth, cfg.ChartHeight)
		case err == nil:
			data, err = renderer.RenderChart(res)
		}
		if err != nil {
			log.Printf("[API] failed to render chart: %v", err)
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}
		writePNG(w, data)
	}
}

func tableImageHandler(svc *service.ExpressionService, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), svc.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var data []byte
		table, err := svc.Table(sel)
		switch {
		case isEmpty(err):
			cfg := renderer.Config()
			data, err = renderer.RenderPlaceholder(service.EmptyMessage, cfg.TableWidth, cfg.TableRowHeight*4)
		case err == nil:
			data, err = renderer.RenderTable(table)
		}
		if err != nil {
			log.Printf("[API] failed to render table: %v", err)
			http.Error(w, "failed to render table", http.StatusInternalServerError)
			return
		}
		writePNG(w, data)
	}
}

func downloadHandler(store *dataset.Store, filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := store.WriteCSV(&buf); err != nil {
			log.Printf("[API] failed to export dataset: %v", err)
			http.Error(w, "failed to export dataset", http.StatusInternalServerError)
			return
		}
		setAttachment(w, filename)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

func logoHandler(logo Logo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(logo.Data) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", logo.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(logo.Data)
	}
}

package api

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/bmaharathi/zombiegene/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	articleTitle = "Selective time-dependent changes in activity and cell-specific gene expression in human postmortem brain"
	articleURL   = "https://doi.org/10.1038/s41598-021-85801-6"
	abstract     = "As a means to understand human neuropsychiatric disorders from human brain samples, " +
		"we compared the transcription patterns and histological features of postmortem brain to fresh human " +
		"neocortex isolated immediately following surgical removal. Compared to a number of neuropsychiatric " +
		"disease-associated postmortem transcriptomes, the fresh human brain transcriptome had an entirely " +
		"unique transcriptional pattern. To understand this difference, we measured genome-wide transcription " +
		"as a function of time after fresh tissue removal to mimic the postmortem interval. Within a few " +
		"hours, a selective reduction in the number of neuronal activity-dependent transcripts occurred with " +
		"relative preservation of housekeeping genes commonly used as a reference for RNA normalization. Gene " +
		"clustering indicated a rapid reduction in neuronal gene expression with a reciprocal time-dependent " +
		"increase in astroglial and microglial gene expression that continued to increase for at least 24 h " +
		"after tissue resection. Predicted transcriptional changes were confirmed histologically on the same " +
		"tissue demonstrating that while neurons were degenerating, glial cells underwent an outgrowth of " +
		"their processes. The rapid loss of neuronal genes and reciprocal expression of glial genes highlights " +
		"highly dynamic transcriptional and cellular changes that occur during the postmortem interval. " +
		"Understanding these time-dependent changes in gene expression in post mortem brain samples is " +
		"critical for the interpretation of research studies on human brain disorders."
)

type geneOptionView struct {
	Value    int
	Label    string
	Selected bool
}

type modeView struct {
	Code     string
	Label    string
	Selected bool
}

type pageView struct {
	Title        string
	LogoURI      template.URL
	Genes        []geneOptionView
	Modes        []modeView
	Query        template.URL
	Empty        bool
	Message      string
	Undefined    []string
	ArticleTitle string
	ArticleURL   string
	Abstract     string
}

func indexHandler(cfg RouterConfig) http.HandlerFunc {
	logoURI := cfg.Logo.DataURI()

	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := parseSelection(r.URL.Query(), cfg.Service.DefaultSelection())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		selected := make(map[int]bool, len(sel.GeneIDs))
		for _, id := range sel.GeneIDs {
			selected[id] = true
		}
		options := cfg.Service.Options()
		genes := make([]geneOptionView, len(options))
		for i, o := range options {
			genes[i] = geneOptionView{Value: o.Value, Label: o.Label, Selected: selected[o.Value]}
		}
		modes := make([]modeView, len(service.Modes))
		for i, m := range service.Modes {
			modes[i] = modeView{Code: m.Code(), Label: m.Label(), Selected: m == sel.Mode}
		}

		view := pageView{
			Title:        cfg.Title,
			LogoURI:      logoURI,
			Genes:        genes,
			Modes:        modes,
			Query:        template.URL(selectionQuery(sel).Encode()),
			ArticleTitle: articleTitle,
			ArticleURL:   articleURL,
			Abstract:     abstract,
		}

		res, err := cfg.Service.Series(sel)
		switch {
		case isEmpty(err):
			view.Empty = true
			view.Message = service.EmptyMessage
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			view.Undefined = res.Undefined
		}

		var buf bytes.Buffer
		if err := indexTemplate.Execute(&buf, view); err != nil {
			log.Printf("[API] failed to render index: %v", err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

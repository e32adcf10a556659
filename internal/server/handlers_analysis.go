package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/cv-workbench/internal/analysis"
	"github.com/jonathan/cv-workbench/internal/ats"
	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/parsing"
	"github.com/jonathan/cv-workbench/internal/rendering"
	"github.com/jonathan/cv-workbench/internal/rewriting"
	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/jonathan/cv-workbench/internal/voice"
)

type parseRequest struct {
	Text string `json:"text"`
	AI   *bool  `json:"ai,omitempty"`
}

// parseResponse carries the parsed record, which parser produced it and, when ?import= was
// given, the store record after applying it.
type parseResponse struct {
	Record   *types.CareerRecord `json:"record"`
	Source   string              `json:"source"`
	Document *ingestion.Metadata `json:"document,omitempty"`
	Applied  *types.CareerRecord `json:"applied,omitempty"`
}

type analyzeRequest struct {
	JD string `json:"jd"`
	AI *bool  `json:"ai,omitempty"`
}

type analyzeResponse struct {
	Analysis *types.JDAnalysis `json:"analysis"`
	Source   string            `json:"source"`
}

type gapRequest struct {
	Keyword string `json:"keyword"`
	Mode    string `json:"mode"`
}

type toneRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type toneCheckResponse struct {
	Flags     []types.ToneFlag `json:"flags"`
	RiskScore int              `json:"riskScore"`
	VerbScore int              `json:"verbScore"`
}

type toneSuggestResponse struct {
	Suggestion *types.VerbSuggestion `json:"suggestion"`
	VerbScore  int                   `json:"verbScore"`
}

type rewriteRequest struct {
	Mode           string   `json:"mode"`
	JD             string   `json:"jd"`
	AchievementIDs []string `json:"achievementIds"`
	Apply          bool     `json:"apply"`
}

type rewriteResponse struct {
	Record  *types.CareerRecord `json:"record"`
	Report  *rewriting.Report   `json:"report"`
	Applied bool                `json:"applied"`
}

// handleParse parses pasted CV text
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	text := ingestion.CleanText(req.Text)
	if text == "" {
		s.errorResponse(w, r, &ErrValidation{Field: "text", Message: "CV text is required"})
		return
	}
	s.parseAndRespond(w, r, text, req.AI, nil)
}

// handleParseUpload extracts text from a multipart "file" upload and parses it.
// The optional "ai" form field overrides the server default.
func (s *Server) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileSize+(1<<20))
	if err := r.ParseMultipartForm(ingestion.MaxFileSize); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxFileSize+1))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "failed to read upload"})
		return
	}
	if len(data) > ingestion.MaxFileSize {
		s.errorResponse(w, r, &ErrValidation{Field: "file", Message: "file exceeds the upload limit"})
		return
	}

	doc, err := ingestion.Extract(data, header.Filename)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var useAI *bool
	if v := r.FormValue("ai"); v != "" {
		want := v == "true" || v == "1"
		useAI = &want
	}
	s.parseAndRespond(w, r, doc.Text, useAI, doc.Metadata)
}

func (s *Server) parseAndRespond(w http.ResponseWriter, r *http.Request, text string, useAI *bool, meta *ingestion.Metadata) {
	record, source := parsing.ParseWithFallback(r.Context(), s.clientFor(useAI), text, s.generateOptions(llm.TierStandard, true))
	resp := parseResponse{Record: record, Source: source, Document: meta}

	if raw := r.URL.Query().Get("import"); raw != "" {
		mode, err := store.ParseImportMode(raw)
		if err != nil {
			s.errorResponse(w, r, &ErrValidation{Field: "import", Message: err.Error()})
			return
		}
		applied, err := s.store.Import(record, mode)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		resp.Applied = applied
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyze compares a job description against the stored record
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, source, err := analysis.AnalyzeWithFallback(r.Context(), s.clientFor(req.AI), req.JD, s.store.Record(),
		s.generateOptions(llm.TierStandard, true))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analyzeResponse{Analysis: result, Source: source})
}

// handleGapSuggestions asks the AI collaborator for bullets covering a missing keyword
func (s *Server) handleGapSuggestions(w http.ResponseWriter, r *http.Request) {
	var req gapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		s.errorResponse(w, r, &ErrValidation{Field: "keyword", Message: "keyword is required"})
		return
	}
	if s.client == nil {
		s.errorResponse(w, r, ErrAIUnavailable)
		return
	}

	bullets, err := analysis.SuggestGapBullets(r.Context(), s.client, req.Keyword, s.mode(req.Mode),
		s.generateOptions(llm.TierLite, true))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"keyword": req.Keyword, "bullets": bullets})
}

func (s *Server) handleATS(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ats.Score(s.store.Record()))
}

func (s *Server) handleToneCheck(w http.ResponseWriter, r *http.Request) {
	var req toneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	flags := voice.ToneIntegrityCheck(req.Text)
	if flags == nil {
		flags = []types.ToneFlag{}
	}
	s.jsonResponse(w, http.StatusOK, toneCheckResponse{
		Flags:     flags,
		RiskScore: voice.RiskScore(flags),
		VerbScore: voice.ScoreToneVerbs(req.Text, string(s.mode(req.Mode))),
	})
}

func (s *Server) handleToneSuggest(w http.ResponseWriter, r *http.Request) {
	var req toneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	mode := string(s.mode(req.Mode))
	s.jsonResponse(w, http.StatusOK, toneSuggestResponse{
		Suggestion: voice.SuggestToneVerb(req.Text, mode),
		VerbScore:  voice.ScoreToneVerbs(req.Text, mode),
	})
}

func (s *Server) handleToneAudit(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, voice.AuditAIFeel(s.store.Record().AllAchievements()))
}

// handleRewrite rewrites achievements with the AI collaborator. With apply set the result
// replaces the stored record as one undoable step.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if s.client == nil {
		s.errorResponse(w, r, ErrAIUnavailable)
		return
	}

	updated, report, err := rewriting.RewriteAchievements(r.Context(), s.client, s.store.Record(), rewriting.Request{
		Mode:           s.mode(req.Mode),
		JDText:         req.JD,
		AchievementIDs: req.AchievementIDs,
	}, s.generateOptions(llm.TierAdvanced, true))
	if err != nil {
		if errors.Is(err, llm.ErrNoClient) {
			err = ErrAIUnavailable
		}
		s.errorResponse(w, r, err)
		return
	}

	if req.Apply {
		if updated, err = s.store.ReplaceAll(updated); err != nil {
			s.errorResponse(w, r, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, rewriteResponse{Record: updated, Report: report, Applied: req.Apply})
}

// handleRender returns the LaTeX source for the stored record and settings
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var (
		tex string
		err error
	)
	if s.cfg.TemplatePath != "" {
		tex, err = rendering.RenderLaTeXFromFile(s.store.Record(), s.store.Settings(), s.cfg.TemplatePath)
	} else {
		tex, err = rendering.RenderLaTeX(s.store.Record(), s.store.Settings())
	}
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.tex"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, tex)
}

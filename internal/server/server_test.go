package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const sampleCV = `Alex Morgan
Head of IT
alex@example.com | +44 7700 900123 | London

PROFESSIONAL SUMMARY
IT leader with 15 years across governance and infrastructure.

EXPERIENCE
Head of IT | Acme Ltd | 2019 - Present
- Led ITIL adoption across 4 service desks, cutting incidents by 30%
- Managed a £2m annual infrastructure budget

EDUCATION
BSc Computer Science, University of Leeds, 2005
`

const sampleJD = `We are hiring a Head of IT Governance to own ITIL service management, vendor management,
risk and compliance, budget ownership and cloud migration to Azure across the group.`

func testRecord() *types.CareerRecord {
	record := types.NewCareerRecord()
	record.Profile.Name = "Alex Morgan"
	record.Summary = "IT leader"
	record.Experiences = []types.Experience{{
		ID:      "e1",
		Role:    "Head of IT",
		Company: "Acme",
		Achievements: []types.Achievement{
			{ID: "a1", Text: "Helped with ITIL adoption", Tags: []string{}},
		},
	}}
	return record
}

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	opts := func(tier llm.ModelTier, jsonOut bool) llm.GenerateOptions {
		o := llm.DefaultGenerateOptions(tier, jsonOut)
		o.MaxRetries = 0
		o.Timeout = time.Second
		return o
	}
	return New(Config{UseAI: client != nil, GenerateOptions: opts}, store.New(testRecord()), client, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["ai"])
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodOptions, "/record", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{Port: 9090}, nil, nil, nil)
	assert.Equal(t, "127.0.0.1:9090", s.Addr())
	assert.Equal(t, types.ModeHybrid, s.cfg.DefaultMode)
}

func TestRecordEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/record", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alex Morgan", decode[types.CareerRecord](t, w).Profile.Name)

	w = doRequest(t, s, http.MethodPut, "/record/summary", summaryRequest{Summary: "  New summary  "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New summary", decode[types.CareerRecord](t, w).Summary)

	w = doRequest(t, s, http.MethodPut, "/record/profile", types.Profile{Name: "Sam Lee", Email: "sam@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sam Lee", decode[types.CareerRecord](t, w).Profile.Name)

	w = doRequest(t, s, http.MethodPut, "/record/profile", types.Profile{Name: "Sam Lee", Email: "sam at example"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sam@example.com", s.store.Record().Profile.Email)

	w = doRequest(t, s, http.MethodPut, "/record/layout", layoutRequest{
		SectionOrder:      []string{types.SectionSkills, types.SectionExperience},
		SectionVisibility: map[string]bool{types.SectionSummary: false},
	})
	require.Equal(t, http.StatusOK, w.Code)
	record := decode[types.CareerRecord](t, w)
	assert.Equal(t, []string{types.SectionSkills, types.SectionExperience}, record.SectionOrder)
	assert.False(t, record.SectionVisibility[types.SectionSummary])

	w = doRequest(t, s, http.MethodPost, "/record/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	undo := decode[map[string]json.RawMessage](t, w)
	assert.JSONEq(t, "true", string(undo["undone"]))
	assert.Equal(t, types.DefaultSectionOrder(), s.store.Record().SectionOrder)
}

func TestRecordEndpoints_BadBody(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodPut, "/record/summary", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "body")
}

func TestExperienceEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/experiences", types.Experience{Role: "CTO", Company: "Beta"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[createdResponse](t, w)
	require.NotEmpty(t, created.ID)
	assert.Len(t, created.Record.Experiences, 2)

	w = doRequest(t, s, http.MethodPost, "/experiences/"+created.ID+"/move", moveRequest{Index: 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[types.CareerRecord](t, w).Experiences[0].ID)

	w = doRequest(t, s, http.MethodPost, "/experiences/"+created.ID+"/achievements", achievementRequest{Text: "Cut costs by 20%"})
	require.Equal(t, http.StatusCreated, w.Code)
	achievement := decode[createdResponse](t, w)
	require.NotEmpty(t, achievement.ID)

	w = doRequest(t, s, http.MethodPost, "/experiences/"+created.ID+"/achievements", achievementRequest{Text: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPut, "/experiences/"+created.ID+"/achievements/"+achievement.ID,
		achievementRequest{Text: "Cut run costs by 20%"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cut run costs by 20%", decode[types.CareerRecord](t, w).Experiences[0].Achievements[0].Text)

	w = doRequest(t, s, http.MethodDelete, "/experiences/"+created.ID+"/achievements/"+achievement.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[types.CareerRecord](t, w).Experiences[0].Achievements)

	w = doRequest(t, s, http.MethodPut, "/experiences/e1", types.Experience{Role: "Director of IT", Company: "Acme"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/experiences/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	record := decode[types.CareerRecord](t, w)
	require.Len(t, record.Experiences, 1)
	assert.Equal(t, "Director of IT", record.Experiences[0].Role)
}

func TestEntityEndpoints_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"update experience", http.MethodPut, "/experiences/missing", types.Experience{Role: "x"}},
		{"remove experience", http.MethodDelete, "/experiences/missing", nil},
		{"move experience", http.MethodPost, "/experiences/missing/move", moveRequest{}},
		{"add achievement", http.MethodPost, "/experiences/missing/achievements", achievementRequest{Text: "x"}},
		{"remove achievement", http.MethodDelete, "/experiences/e1/achievements/missing", nil},
		{"update education", http.MethodPut, "/education/missing", types.Education{Degree: "x"}},
		{"remove certification", http.MethodDelete, "/certifications/missing", nil},
		{"restore version", http.MethodPost, "/versions/missing/restore", nil},
		{"delete version", http.MethodDelete, "/versions/missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestEducationAndCertificationEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/education", types.Education{Degree: "MSc", Field: "IT Management"})
	require.Equal(t, http.StatusCreated, w.Code)
	ed := decode[createdResponse](t, w)

	w = doRequest(t, s, http.MethodPut, "/education/"+ed.ID, types.Education{Degree: "MBA"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MBA", decode[types.CareerRecord](t, w).Education[0].Degree)

	w = doRequest(t, s, http.MethodDelete, "/education/"+ed.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[types.CareerRecord](t, w).Education)

	w = doRequest(t, s, http.MethodPost, "/certifications", types.Certification{Name: "ITIL 4 Foundation"})
	require.Equal(t, http.StatusCreated, w.Code)
	cert := decode[createdResponse](t, w)

	w = doRequest(t, s, http.MethodPut, "/certifications/"+cert.ID, types.Certification{Name: "PRINCE2", Year: "2020"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PRINCE2", decode[types.CareerRecord](t, w).Certifications[0].Name)
}

func TestSettingsEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode[types.DesignSettings](t, w)

	settings.ShowPhoto = !settings.ShowPhoto
	w = doRequest(t, s, http.MethodPut, "/settings", settings)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, settings.ShowPhoto, s.store.Settings().ShowPhoto)

	w = doRequest(t, s, http.MethodPut, "/settings", map[string]any{"fontSize": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVersionEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/versions", versionRequest{Label: "before rewrite"})
	require.Equal(t, http.StatusCreated, w.Code)
	version := decode[store.Version](t, w)
	assert.Equal(t, "before rewrite", version.Label)

	doRequest(t, s, http.MethodPut, "/record/summary", summaryRequest{Summary: "changed"})

	w = doRequest(t, s, http.MethodPost, "/versions/"+version.ID+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IT leader", decode[types.CareerRecord](t, w).Summary)

	w = doRequest(t, s, http.MethodGet, "/versions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]store.Version](t, w)["versions"], 1)

	w = doRequest(t, s, http.MethodDelete, "/versions/"+version.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.store.Versions())
}

func TestImportExport(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/record/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "career-record.json")
	exported := w.Body.String()

	doRequest(t, s, http.MethodPut, "/record/summary", summaryRequest{Summary: "changed"})

	w = doRequest(t, s, http.MethodPost, "/record/import?mode=overwrite", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IT leader", decode[types.CareerRecord](t, w).Summary)

	w = doRequest(t, s, http.MethodPost, "/record/import?mode=replace", exported)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/record/import", `{"profile": "not an object"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Contains(t, body["fields"], "profile")
}

func TestParse(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/parse", parseRequest{Text: sampleCV})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[parseResponse](t, w)
	assert.Equal(t, types.SourceHeuristic, resp.Source)
	assert.Equal(t, "Alex Morgan", resp.Record.Profile.Name)
	assert.Nil(t, resp.Applied)

	w = doRequest(t, s, http.MethodPost, "/parse", parseRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParse_ImportOverwrite(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/parse?import=overwrite", parseRequest{Text: sampleCV})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[parseResponse](t, w)
	require.NotNil(t, resp.Applied)
	assert.Equal(t, resp.Record.Summary, s.store.Record().Summary)
}

func TestParse_AIFailureFallsBack(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "not json"})

	w := doRequest(t, s, http.MethodPost, "/parse", parseRequest{Text: sampleCV})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.SourceHeuristic, decode[parseResponse](t, w).Source)
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseUpload(t *testing.T) {
	s := newTestServer(t, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "cv.txt", []byte(sampleCV)))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[parseResponse](t, w)
	assert.Equal(t, "Alex Morgan", resp.Record.Profile.Name)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "cv.txt", resp.Document.Filename)
}

func TestParseUpload_Errors(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("unsupported type", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, uploadRequest(t, "photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, uploadRequest(t, "cv.pdf", []byte("%PDF-1.4\ngarbage")))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/parse/upload", "{}")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/analyze", analyzeRequest{JD: sampleJD})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[analyzeResponse](t, w)
	assert.Equal(t, types.SourceHeuristic, resp.Source)
	require.NotNil(t, resp.Analysis)
	assert.Contains(t, resp.Analysis.PresentKeywords, "itil")

	w = doRequest(t, s, http.MethodPost, "/analyze", analyzeRequest{JD: "too short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIOnlyEndpoints_NoClient(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/rewrite", rewriteRequest{Mode: "governance"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, s, http.MethodPost, "/analyze/gaps", gapRequest{Keyword: "itil"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, s, http.MethodPost, "/analyze/gaps", gapRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRewrite(t *testing.T) {
	client := &fakeClient{response: `{"achievements": [{"id": "a1", "text": "Led ITIL adoption", "tags": ["ITSM"]}]}`}
	s := newTestServer(t, client)

	w := doRequest(t, s, http.MethodPost, "/rewrite", rewriteRequest{Mode: "governance"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[rewriteResponse](t, w)
	assert.False(t, resp.Applied)
	assert.Equal(t, "Led ITIL adoption", resp.Record.Experiences[0].Achievements[0].Text)
	assert.Equal(t, "Helped with ITIL adoption", s.store.Record().Experiences[0].Achievements[0].Text)

	w = doRequest(t, s, http.MethodPost, "/rewrite", rewriteRequest{Mode: "governance", Apply: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[rewriteResponse](t, w).Applied)
	assert.Equal(t, "Led ITIL adoption", s.store.Record().Experiences[0].Achievements[0].Text)
	assert.Equal(t, 1, s.store.HistoryLen())
}

func TestRewrite_UnusableResponse(t *testing.T) {
	s := newTestServer(t, &fakeClient{response: "Here are your rewrites!"})

	w := doRequest(t, s, http.MethodPost, "/rewrite", rewriteRequest{Mode: "governance", Apply: true})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unusable rewrite")
	assert.Equal(t, "Helped with ITIL adoption", s.store.Record().Experiences[0].Achievements[0].Text)
	assert.Zero(t, s.store.HistoryLen())
}

func TestATS(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/ats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	score := decode[types.ATSScore](t, w)
	assert.NotEmpty(t, score.Checks)
	assert.GreaterOrEqual(t, score.Score, 0)
	assert.LessOrEqual(t, score.Score, 100)
}

func TestToneEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodPost, "/tone/check", toneRequest{Text: "Leveraged synergy to deliver best-in-class outcomes"})
	require.Equal(t, http.StatusOK, w.Code)
	check := decode[toneCheckResponse](t, w)
	assert.NotEmpty(t, check.Flags)
	assert.Positive(t, check.RiskScore)

	w = doRequest(t, s, http.MethodPost, "/tone/check", toneRequest{Text: ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"flags":[]`)

	w = doRequest(t, s, http.MethodPost, "/tone/suggest", toneRequest{Text: "Helped with the ERP rollout", Mode: "governance"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[toneSuggestResponse](t, w).Suggestion)

	w = doRequest(t, s, http.MethodGet, "/tone/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var audit types.ToneAudit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &audit))
}

func TestRender(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/render.tex", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/x-tex")
	assert.Contains(t, w.Body.String(), `\documentclass`)
	assert.Contains(t, w.Body.String(), "Alex Morgan")
}

func TestRender_MissingTemplate(t *testing.T) {
	s := New(Config{TemplatePath: "/nonexistent/cv.tex"}, store.New(testRecord()), nil, nil)

	w := doRequest(t, s, http.MethodGet, "/render.tex", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "template file not found")
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s := New(Config{Port: 0}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

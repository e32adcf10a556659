package server

import (
	"io"
	"net/http"

	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/jonathan/cv-workbench/internal/types"
)

type summaryRequest struct {
	Summary string `json:"summary"`
}

type layoutRequest struct {
	SectionOrder      []string        `json:"sectionOrder"`
	SectionVisibility map[string]bool `json:"sectionVisibility"`
}

type versionRequest struct {
	Label string `json:"label"`
}

type moveRequest struct {
	Index int `json:"index"`
}

type achievementRequest struct {
	Text    string   `json:"text"`
	Metrics string   `json:"metrics"`
	Tags    []string `json:"tags"`
}

// createdResponse answers add operations with the minted id and the updated record
type createdResponse struct {
	ID     string              `json:"id"`
	Record *types.CareerRecord `json:"record"`
}

// recordResult writes the updated record or the error from a store mutation
func (s *Server) recordResult(w http.ResponseWriter, r *http.Request, record *types.CareerRecord, err error) {
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

func (s *Server) createdResult(w http.ResponseWriter, r *http.Request, record *types.CareerRecord, id string, err error) {
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, createdResponse{ID: id, Record: record})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Record())
}

func (s *Server) handleReplaceRecord(w http.ResponseWriter, r *http.Request) {
	var record types.CareerRecord
	if err := decodeJSON(w, r, &record); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.ReplaceAll(&record)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.SetProfile(profile)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.SetSummary(req.Summary)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	var skills types.Skills
	if err := decodeJSON(w, r, &skills); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.SetSkills(skills)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.SetLayout(req.SectionOrder, req.SectionVisibility)
	s.recordResult(w, r, updated, err)
}

// handleImport accepts an exported record as the body. ?mode=merge (default) or overwrite.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode, err := store.ParseImportMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	record, err := store.ImportJSON(data)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	updated, err := s.store.Import(record, mode)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := store.ExportJSON(s.store.Export())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="career-record.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	record, undone, err := s.store.Undo()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"undone": undone,
		"record": record,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.store.Settings()
	if err := decodeJSON(w, r, &settings); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.store.SetSettings(settings); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleListVersions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"versions": s.store.Versions()})
}

func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	var req versionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	version, err := s.store.SaveVersion(req.Label)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, version)
}

func (s *Server) handleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RestoreVersion(r.PathValue("id"))
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteVersion(r.PathValue("id")); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var exp types.Experience
	if err := decodeJSON(w, r, &exp); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, id, err := s.store.AddExperience(exp)
	s.createdResult(w, r, updated, id, err)
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var exp types.Experience
	if err := decodeJSON(w, r, &exp); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	exp.ID = r.PathValue("id")
	updated, err := s.store.UpdateExperience(exp)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RemoveExperience(r.PathValue("id"))
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleMoveExperience(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.MoveExperience(r.PathValue("id"), req.Index)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, id, err := s.store.AddAchievement(r.PathValue("id"), req.Text)
	s.createdResult(w, r, updated, id, err)
}

func (s *Server) handleUpdateAchievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, err := s.store.UpdateAchievement(r.PathValue("id"), types.Achievement{
		ID:      r.PathValue("achievement_id"),
		Text:    req.Text,
		Metrics: req.Metrics,
		Tags:    req.Tags,
	})
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleRemoveAchievement(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RemoveAchievement(r.PathValue("id"), r.PathValue("achievement_id"))
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var ed types.Education
	if err := decodeJSON(w, r, &ed); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, id, err := s.store.AddEducation(ed)
	s.createdResult(w, r, updated, id, err)
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var ed types.Education
	if err := decodeJSON(w, r, &ed); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	ed.ID = r.PathValue("id")
	updated, err := s.store.UpdateEducation(ed)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RemoveEducation(r.PathValue("id"))
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	var cert types.Certification
	if err := decodeJSON(w, r, &cert); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	updated, id, err := s.store.AddCertification(cert)
	s.createdResult(w, r, updated, id, err)
}

func (s *Server) handleUpdateCertification(w http.ResponseWriter, r *http.Request) {
	var cert types.Certification
	if err := decodeJSON(w, r, &cert); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	cert.ID = r.PathValue("id")
	updated, err := s.store.UpdateCertification(cert)
	s.recordResult(w, r, updated, err)
}

func (s *Server) handleRemoveCertification(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RemoveCertification(r.PathValue("id"))
	s.recordResult(w, r, updated, err)
}

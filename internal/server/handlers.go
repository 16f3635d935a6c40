package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLocate locates a concrete artifact:
//
//	GET /v1/locate?organisation=o&module=m&revision=r[&artifact=a][&type=t][&ext=e][&as_of=RFC3339]
//
// artifact defaults to the module name; type and ext default to "jar".
// A missing artifact is a 404, not an error.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	a, asOf, err := artifactQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.res.FindArtifact(r.Context(), a, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "artifact %s not found", a.String()))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExists probes for an artifact:
//
//	GET /v1/exists?organisation=o&module=m&revision=r[&artifact=a][&type=t][&ext=e]
func (s *Server) handleExists(w http.ResponseWriter, r *http.Request) {
	a, _, err := artifactQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.res.Exists(r.Context(), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": ok})
}

// handleResolve resolves a module revision by descriptor with artifact
// fallback:
//
//	GET /v1/resolve?organisation=o&module=m&revision=r[&as_of=RFC3339]
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	mid, err := moduleQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	asOf, err := asOfQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rm, err := s.res.GetDependency(r.Context(), mid, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	if rm == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "module %s not found", mid.String()))
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

// handleModules enumerates an organisation's modules:
//
//	GET /v1/modules?organisation=o
//
// Resolver types that forbid module enumeration return an empty list.
func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	org := r.URL.Query().Get("organisation")
	if org == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "organisation is required"))
		return
	}

	mods, err := s.res.ListModules(r.Context(), org)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"modules": emptyIfNil(mods)})
}

// handleRevisions enumerates a module's revisions:
//
//	GET /v1/revisions?organisation=o&module=m
func (s *Server) handleRevisions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	org, mod := q.Get("organisation"), q.Get("module")
	if org == "" || mod == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "organisation and module are required"))
		return
	}

	revs, err := s.res.ListRevisions(r.Context(), org, mod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"revisions": emptyIfNil(revs)})
}

// handlePublish accepts a publish request and forwards it to the resolver.
// Read-only resolver types refuse, which maps to 501.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Organisation string `json:"organisation"`
		Module       string `json:"module"`
		Revision     string `json:"revision"`
		Artifact     string `json:"artifact"`
		Type         string `json:"type"`
		Ext          string `json:"ext"`
		Src          string `json:"src"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	a := coord.Artifact{
		ModuleID: coord.ModuleID{Organisation: req.Organisation, Module: req.Module, Revision: req.Revision},
		Name:     req.Artifact,
		Type:     req.Type,
		Ext:      req.Ext,
	}
	if err := s.res.Publish(r.Context(), a, req.Src); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "published"})
}

// artifactQuery parses the artifact coordinate from query parameters.
func artifactQuery(r *http.Request) (coord.Artifact, time.Time, error) {
	mid, err := moduleQuery(r)
	if err != nil {
		return coord.Artifact{}, time.Time{}, err
	}
	asOf, err := asOfQuery(r)
	if err != nil {
		return coord.Artifact{}, time.Time{}, err
	}

	q := r.URL.Query()
	a := coord.Artifact{
		ModuleID: mid,
		Name:     q.Get("artifact"),
		Type:     q.Get("type"),
		Ext:      q.Get("ext"),
	}
	if a.Name == "" {
		a.Name = mid.Module
	}
	if a.Type == "" {
		a.Type = "jar"
	}
	if a.Ext == "" {
		a.Ext = a.Type
	}
	return a, asOf, nil
}

func moduleQuery(r *http.Request) (coord.ModuleID, error) {
	q := r.URL.Query()
	mid := coord.ModuleID{
		Organisation: q.Get("organisation"),
		Module:       q.Get("module"),
		Revision:     q.Get("revision"),
	}
	if mid.Organisation == "" || mid.Module == "" || mid.Revision == "" {
		return coord.ModuleID{}, errors.New(errors.ErrCodeInvalidInput,
			"organisation, module, and revision are required")
	}
	return mid, nil
}

func asOfQuery(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid as_of timestamp")
	}
	return t, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError renders a structured error with the HTTP status its code maps
// to. UserMessage keeps internal detail out of responses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRoot,
		errors.ErrCodeInvalidPattern, errors.ErrCodeInvalidCoordinate:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

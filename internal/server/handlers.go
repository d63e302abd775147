package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synforge/routecluster/pkg/cluster"
	apperrors "github.com/synforge/routecluster/pkg/errors"
	"github.com/synforge/routecluster/pkg/graphio"
	"github.com/synforge/routecluster/pkg/pipeline"
	"github.com/synforge/routecluster/pkg/store"
)

// clusterRequest is the body of POST /api/cluster.
type clusterRequest struct {
	Target  string                    `json:"target,omitempty"`
	Routes  map[string]*graphio.Graph `json:"routes"`
	Options pipeline.Options          `json:"options"`
}

// clusterResponse is the body of a successful POST /api/cluster.
type clusterResponse struct {
	ReportID   string                `json:"report_id,omitempty"`
	RoutesHash string                `json:"routes_hash"`
	Stats      pipeline.Stats        `json:"stats"`
	CacheInfo  pipeline.CacheInfo    `json:"cache_info"`
	Clusters   []store.ClusterRecord `json:"clusters"`
}

type errorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if len(req.Routes) == 0 {
		s.writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "routes are required"))
		return
	}

	routes := make(cluster.RouteMap, len(req.Routes))
	for id, doc := range req.Routes {
		if err := apperrors.ValidateRouteID(id); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		g, err := doc.Decode()
		if err != nil {
			s.writeError(w, http.StatusBadRequest,
				apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "route %s", id))
			return
		}
		routes[cluster.RouteID(id)] = g
	}

	opts := req.Options
	opts.Target = req.Target
	result, err := s.runner.Execute(r.Context(), routes, opts)
	if err != nil {
		code := apperrors.ErrCodeInternal
		if errors.Is(err, cluster.ErrSubclusterFailed) {
			code = apperrors.ErrCodeSubclusterFailed
		}
		s.writeError(w, http.StatusUnprocessableEntity,
			apperrors.Wrap(code, err, "pipeline failed"))
		return
	}

	resp := clusterResponse{
		RoutesHash: result.RoutesHash,
		Stats:      result.Stats,
		CacheInfo:  result.CacheInfo,
		Clusters:   store.RecordClusters(result.Clusters, result.Subgroups),
	}

	if s.store != nil {
		rep := store.NewReport(req.Target, store.Options{
			Reduce:            opts.Reduce,
			UseStrategicBonds: opts.UseStrategicBonds,
			PostProcess:       opts.PostProcess,
		})
		rep.RouteCount = result.Stats.RouteCount
		rep.Clusters = resp.Clusters
		if err := s.store.Set(r.Context(), rep); err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeStoreWrite, err, "persist report"))
			return
		}
		resp.ReportID = rep.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []store.Summary{})
		return
	}
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStoreRead, err, "list reports"))
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeReportNotFound, "report %s not found", id))
		return
	}
	rep, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "report id"))
		return
	}
	if rep == nil {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeReportNotFound, "report %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "report id"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "err", err)
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    apperrors.GetCode(err),
		Message: apperrors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

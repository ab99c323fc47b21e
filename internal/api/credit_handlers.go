// ABOUTME: HTTP handlers for carbon credit lifecycle routes
// ABOUTME: Create, list, fetch, update, re-verify, and retire credits

package api

import (
	"net/http"
	"time"

	"github.com/terraledger/terraledger/internal/credits"
)

// LocationBody is the JSON shape of a credit location.
type LocationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	GeoHash   string  `json:"geo_hash,omitempty"`
}

// CreateCreditRequest is the JSON request body for creating a credit.
type CreateCreditRequest struct {
	ProjectName        string       `json:"project_name"`
	ProjectDescription string       `json:"project_description,omitempty"`
	OwnerID            string       `json:"owner_id"`
	Acres              float64      `json:"acres"`
	Location           LocationBody `json:"location"`
}

// CreditResponse is the JSON shape of a carbon credit.
type CreditResponse struct {
	ID                  string       `json:"id"`
	ProjectName         string       `json:"project_name"`
	ProjectDescription  string       `json:"project_description,omitempty"`
	OwnerID             string       `json:"owner_id"`
	Acres               float64      `json:"acres"`
	Location            LocationBody `json:"location"`
	ForestCoverage      float64      `json:"forest_coverage"`
	Confidence          float64      `json:"confidence"`
	CarbonSequestration float64      `json:"carbon_sequestration"`
	Status              string       `json:"status"`
	TokenID             string       `json:"token_id,omitempty"`
	SerialNumber        *int64       `json:"serial_number,omitempty"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
}

func creditResponse(c *credits.CarbonCredit) CreditResponse {
	return CreditResponse{
		ID:                 c.ID,
		ProjectName:        c.ProjectName,
		ProjectDescription: c.ProjectDescription,
		OwnerID:            c.OwnerID,
		Acres:              c.Acres,
		Location: LocationBody{
			Latitude:  c.Location.Latitude,
			Longitude: c.Location.Longitude,
			GeoHash:   c.Location.GeoHash,
		},
		ForestCoverage:      c.ForestCoverage,
		Confidence:          c.Confidence,
		CarbonSequestration: c.CarbonSequestration,
		Status:              c.Status,
		TokenID:             c.TokenID,
		SerialNumber:        c.SerialNumber,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleCreateCredit(w http.ResponseWriter, r *http.Request) {
	var req CreateCreditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProjectName == "" || req.OwnerID == "" || req.Acres <= 0 {
		writeError(w, http.StatusBadRequest, "project_name, owner_id, and positive acres are required")
		return
	}

	credit, err := s.credits.Create(r.Context(), credits.CreateRequest{
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		OwnerID:            req.OwnerID,
		Acres:              req.Acres,
		Location: credits.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			GeoHash:   req.Location.GeoHash,
		},
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, creditResponse(credit))
}

func (s *Server) handleListCredits(w http.ResponseWriter, r *http.Request) {
	filter := credits.Filter{
		OwnerID: r.URL.Query().Get("owner_id"),
		Status:  r.URL.Query().Get("status"),
	}

	list, err := s.credits.List(r.Context(), filter)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	responses := make([]CreditResponse, 0, len(list))
	for _, credit := range list {
		responses = append(responses, creditResponse(credit))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleGetCredit(w http.ResponseWriter, r *http.Request) {
	credit, err := s.credits.Get(r.Context(), r.PathValue("creditID"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditResponse(credit))
}

// UpdateCreditRequest carries optional field updates for a credit.
type UpdateCreditRequest struct {
	ProjectName        *string `json:"project_name,omitempty"`
	ProjectDescription *string `json:"project_description,omitempty"`
}

func (s *Server) handleUpdateCredit(w http.ResponseWriter, r *http.Request) {
	var req UpdateCreditRequest
	if !decodeBody(w, r, &req) {
		return
	}

	credit, err := s.credits.Update(r.Context(), r.PathValue("creditID"), credits.UpdateRequest{
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditResponse(credit))
}

func (s *Server) handleVerifyCredit(w http.ResponseWriter, r *http.Request) {
	credit, err := s.credits.Verify(r.Context(), r.PathValue("creditID"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditResponse(credit))
}

func (s *Server) handleRetireCredit(w http.ResponseWriter, r *http.Request) {
	credit, err := s.credits.Retire(r.Context(), r.PathValue("creditID"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creditResponse(credit))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nmehta6/shopassist/internal/api/response"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/service"
)

// PolicyHandler handles store policy endpoints
type PolicyHandler struct {
	policyService *service.PolicyService
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(policyService *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// List returns all policies
func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyService.List(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list policies")
		return
	}
	response.OK(w, policies)
}

// Get returns the policy for a type
func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	policyType := domain.PolicyType(chi.URLParam(r, "policyType"))

	policy, err := h.policyService.Get(r.Context(), policyType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPolicyType):
			response.BadRequest(w, "unknown policy type")
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "policy not found")
		default:
			response.InternalError(w, "failed to get policy")
		}
		return
	}

	response.OK(w, policy)
}

// Upsert creates or replaces the policy for a type
func (h *PolicyHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	policyType := domain.PolicyType(chi.URLParam(r, "policyType"))

	var input domain.PolicyUpsert
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	policy, err := h.policyService.Upsert(r.Context(), policyType, input)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPolicyType) {
			response.BadRequest(w, "unknown policy type")
			return
		}
		response.InternalError(w, "failed to save policy")
		return
	}

	response.OK(w, policy)
}

// Delete removes the policy for a type
func (h *PolicyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	policyType := domain.PolicyType(chi.URLParam(r, "policyType"))

	if err := h.policyService.Delete(r.Context(), policyType); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPolicyType):
			response.BadRequest(w, "unknown policy type")
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "policy not found")
		default:
			response.InternalError(w, "failed to delete policy")
		}
		return
	}

	response.NoContent(w)
}

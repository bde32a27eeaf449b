package handler

import (
	"net/http"
	"time"

	"github.com/tillerhq/farmops/internal/cropplan"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/repository"
)

// HandleListPlans returns plans harvesting within the from/to query window.
// Defaults to the next 30 days.
func HandleListPlans(plans repository.Plan) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := dateQuery(r, "from")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}
		to, err := dateQuery(r, "to")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}
		if from.IsZero() {
			from = time.Now().UTC().Truncate(24 * time.Hour)
		}
		if to.IsZero() {
			to = from.AddDate(0, 0, 30)
		}

		list, err := plans.ListPlans(r.Context(), from, to)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list plans", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListPlansFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

// HandleDerivePlans triggers a derivation sweep. Without a query it covers
// every unplanned order inside the horizon; with ?harvest=YYYY-MM-DD it
// derives the aggregated plans for that harvest day only.
func HandleDerivePlans(deriver cropplan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		harvest, err := dateQuery(r, "harvest")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}

		var report *cropplan.Report
		if harvest.IsZero() {
			report, err = deriver.DeriveAll(r.Context())
		} else {
			report, err = deriver.DeriveForHarvestDate(r.Context(), harvest)
		}
		if err != nil {
			logger.FromContext(r.Context()).Error("Derivation run failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgDeriveFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

// HandleDeriveOrder derives plans for one order
func HandleDeriveOrder(deriver cropplan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		report, err := deriver.DeriveForOrder(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

// HandleListPlanCrops returns the tray crops realizing one plan
func HandleListPlanCrops(crops repository.Crop) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		list, err := crops.ListCropsByPlan(r.Context(), id)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list plan crops", "plan_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListCropsFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

// HandleStartProduction approves a plan and creates its tray crops
func HandleStartProduction(deriver cropplan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		crops, err := deriver.StartProduction(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "production started",
			Data:    crops,
		})
	}
}

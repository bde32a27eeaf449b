package handler

import (
	"net/http"

	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/ordergen"
	"github.com/tillerhq/farmops/internal/repository"
	"github.com/tillerhq/farmops/internal/stagetask"
)

// HandleListTemplates returns every recurring template
func HandleListTemplates(orders repository.Order) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := orders.ListTemplates(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list templates", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListTemplatesFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: templates})
	}
}

// HandleDeactivateTemplate stops future generation for a template
func HandleDeactivateTemplate(orders repository.Order) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		if err := orders.DeactivateTemplate(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "template deactivated"})
	}
}

// HandleBackfillAll triggers a generation run over every active template
func HandleBackfillAll(generator ordergen.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := generator.BackfillAll(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Backfill run failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgBackfillFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

// HandleBackfillTemplate triggers generation for one template. Optional
// `from` and `to` query parameters bound the window.
func HandleBackfillTemplate(generator ordergen.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var opts ordergen.BackfillOptions
		if opts.From, err = dateQuery(r, "from"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}
		if opts.To, err = dateQuery(r, "to"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}

		report, err := generator.Backfill(r.Context(), id, opts)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

// HandleCancelOrder cancels a generated order and deactivates the task
// schedules of crops grown solely for it.
func HandleCancelOrder(orders repository.Order, tasks stagetask.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		ctx := r.Context()
		if err := orders.UpdateOrderStatus(ctx, id, domain.OrderStatusCancelled); err != nil {
			respondServiceError(w, err)
			return
		}
		deactivated, err := tasks.DeactivateForOrder(ctx, id)
		if err != nil {
			// The order is already cancelled; report the partial outcome
			logger.FromContext(ctx).Error("Failed to deactivate tasks for cancelled order", "order_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgCancelOrderFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "order cancelled",
			Data:    map[string]int{"tasks_deactivated": deactivated},
		})
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/monitor"
	"github.com/tillerhq/farmops/internal/repository"
	"github.com/tillerhq/farmops/internal/stagetask"
)

// HandleAdvanceCrop moves a crop to its next stage. This is the only way a
// crop moves forward; nothing in the background does it automatically.
func HandleAdvanceCrop(tasks stagetask.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		crop, err := tasks.Advance(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: crop})
	}
}

// HandleRollbackCrop moves a crop back one stage
func HandleRollbackCrop(tasks stagetask.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		crop, err := tasks.Rollback(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: crop})
	}
}

// HandleDeleteCrop removes a crop, deactivating its task schedule first so
// no reminder outlives the tray it watches
func HandleDeleteCrop(crops repository.Crop, tasks repository.Task) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		if err := tasks.DeactivateCropTask(r.Context(), id); err != nil {
			logger.FromContext(r.Context()).Error("Failed to deactivate task schedule", "crop_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgDeleteCropFailed)
			return
		}
		if err := crops.DeleteCrop(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "crop deleted"})
	}
}

// HandleListDueTasks returns active task schedules due before the `by` query
// date, defaulting to 48 hours from now.
func HandleListDueTasks(tasks repository.Task) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		by, err := dateQuery(r, "by")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
			return
		}
		if by.IsZero() {
			by = time.Now().UTC().Add(48 * time.Hour)
		}

		due, err := tasks.ListTasksDueBy(r.Context(), by)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list due tasks", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListTasksFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: due})
	}
}

// HandleRescheduleTasks recomputes schedules for every active crop
func HandleRescheduleTasks(tasks stagetask.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rescheduled, err := tasks.RescheduleAll(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Reschedule run failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgRescheduleFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "tasks rescheduled",
			Data:    map[string]int{"rescheduled": rescheduled},
		})
	}
}

// HandleSweep runs a monitor sweep and returns its categorized report
func HandleSweep(mon monitor.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := mon.Sweep(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Monitor sweep failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSweepFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

package handler

import (
	"net/http"

	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/repository"
)

// HandleListRecipes returns the grow-recipe catalog
func HandleListRecipes(recipes repository.Recipe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := recipes.ListRecipes(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list recipes", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListRecipesFailed)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

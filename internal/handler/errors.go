package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgMissingQueryParam  = "Missing %s query parameter"
	ErrMsgInvalidID          = "Invalid id"
	ErrMsgInvalidDate        = "Invalid date, expected YYYY-MM-DD"

	ErrMsgBackfillFailed        = "Failed to generate orders"
	ErrMsgDeriveFailed          = "Failed to derive crop plans"
	ErrMsgListPlansFailed       = "Failed to list crop plans"
	ErrMsgStartProductionFailed = "Failed to start production"
	ErrMsgListTemplatesFailed   = "Failed to list templates"
	ErrMsgCancelOrderFailed     = "Failed to cancel order"
	ErrMsgListTasksFailed       = "Failed to list task schedules"
	ErrMsgListRecipesFailed     = "Failed to list recipes"
	ErrMsgListCropsFailed       = "Failed to list crops"
	ErrMsgDeleteCropFailed      = "Failed to delete crop"
	ErrMsgRescheduleFailed      = "Failed to reschedule tasks"
	ErrMsgSweepFailed           = "Failed to run monitor sweep"
)

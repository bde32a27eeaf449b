package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgTemplateNotFound  = "template not found"
	ErrMsgOrderNotFound     = "order not found"
	ErrMsgRecipeNotFound    = "recipe not found"
	ErrMsgPlanNotFound      = "crop plan not found"
	ErrMsgCropNotFound      = "crop not found"
	ErrMsgTaskNotFound      = "task schedule not found"
	ErrMsgNotTemplate       = "order is not a recurring template"
	ErrMsgTemplateInactive  = "template is inactive"
	ErrMsgInvalidFrequency  = "invalid frequency"
	ErrMsgNoStageDuration   = "no duration configured for current stage"
	ErrMsgAtTerminalStage   = "crop already harvested"
	ErrMsgAtFirstStage      = "crop is at its first stage"
	ErrMsgOrderCancelled    = "order is cancelled"
	ErrMsgMissingStartDate  = "template has no start date"
	ErrMsgJobAlreadyRunning = "job is already running"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrTemplateNotFound  = errors.New(ErrMsgTemplateNotFound)
	ErrOrderNotFound     = errors.New(ErrMsgOrderNotFound)
	ErrRecipeNotFound    = errors.New(ErrMsgRecipeNotFound)
	ErrPlanNotFound      = errors.New(ErrMsgPlanNotFound)
	ErrCropNotFound      = errors.New(ErrMsgCropNotFound)
	ErrTaskNotFound      = errors.New(ErrMsgTaskNotFound)
	ErrNotTemplate       = errors.New(ErrMsgNotTemplate)
	ErrTemplateInactive  = errors.New(ErrMsgTemplateInactive)
	ErrInvalidFrequency  = errors.New(ErrMsgInvalidFrequency)
	ErrNoStageDuration   = errors.New(ErrMsgNoStageDuration)
	ErrAtTerminalStage   = errors.New(ErrMsgAtTerminalStage)
	ErrAtFirstStage      = errors.New(ErrMsgAtFirstStage)
	ErrOrderCancelled    = errors.New(ErrMsgOrderCancelled)
	ErrMissingStartDate  = errors.New(ErrMsgMissingStartDate)
	ErrJobAlreadyRunning = errors.New(ErrMsgJobAlreadyRunning)
)

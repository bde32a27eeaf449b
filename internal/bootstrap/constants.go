package bootstrap

// Log messages for application startup and shutdown
const (
	LogMsgStartingFarmOps      = "Starting farmops"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgDatabaseConnected    = "Database connected"
	LogMsgRecipesSeeded        = "Recipe catalog seeded"
	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgSchedulerStopped     = "Scheduler stopped"
	LogMsgShutdownComplete     = "Shutdown complete"
)

package controller

// Phase represents the top-level mode of the controller
type Phase string

const (
	// Possible controller phases
	PhaseBooting      Phase = "Booting"
	PhaseConnecting   Phase = "ConnectingNetwork"
	PhaseSyncingClock Phase = "SyncingClock"
	PhaseReady        Phase = "Ready"
)

package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHealth = "/health"

	// Interview lifecycle
	RouteInterviewStart  = "/api/interview/start"
	RouteInterviewAnswer = "/api/interview/answer"
	RouteInterviewStatus = "/api/interview/{session_id}/status"
	RouteInterviewEnd    = "/api/interview/end"

	// Link access tokens
	RouteLinkGenerate = "/api/link/generate"
	RouteLinkValidate = "/api/link/validate"

	// Diagnostics
	RouteDebugFingerprint = "/api/debug/fingerprint"
)

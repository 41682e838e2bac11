package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// Interview lifecycle
	s.RegisterRouteHandler("POST "+RouteInterviewStart, ChainMiddleware(s.StartInterviewHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteInterviewAnswer, ChainMiddleware(s.SubmitAnswerHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteInterviewStatus, ChainMiddleware(s.InterviewStatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteInterviewEnd, ChainMiddleware(s.EndInterviewHandler(), s.APIMiddleware()...))

	// Link access tokens
	s.RegisterRouteHandler("POST "+RouteLinkGenerate, ChainMiddleware(s.GenerateLinkHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLinkValidate, ChainMiddleware(s.ValidateLinkHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteDebugFingerprint, ChainMiddleware(s.DebugFingerprintHandler(), s.APIMiddleware()...))
}

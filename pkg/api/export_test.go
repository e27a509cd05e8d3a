package api

var ValidateAuth = validateAuth

func NewWithSecret(secret string) *GridServer {
	return &GridServer{signingSecret: secret}
}

func (g *GridServer) ValidateSession(sess Session) error {
	return g.validateSession(sess)
}

package smiles

import "math/rand"

// IdentityProvider yields the request identity attached to one upstream
// call. Rotating it per request lowers the chance of the upstream flagging
// the caller as automated; it is not a security boundary.
type IdentityProvider interface {
	Identity() (token, userAgent string)
}

// RandomIdentityProvider picks a bearer token and user agent independently
// and uniformly at random from fixed pools
type RandomIdentityProvider struct {
	tokens     []string
	userAgents []string
}

// NewRandomIdentityProvider creates a provider over the configured pools
func NewRandomIdentityProvider(tokens, userAgents []string) *RandomIdentityProvider {
	return &RandomIdentityProvider{tokens: tokens, userAgents: userAgents}
}

// Identity returns one token and one user agent
func (p *RandomIdentityProvider) Identity() (string, string) {
	var token, agent string
	if len(p.tokens) > 0 {
		token = p.tokens[rand.Intn(len(p.tokens))]
	}
	if len(p.userAgents) > 0 {
		agent = p.userAgents[rand.Intn(len(p.userAgents))]
	}
	return token, agent
}

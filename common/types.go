package common

// NetworkIdentifier is the symbolic name of a network endpoint. It is the
// value persisted as the active network and used as the option map key.
type NetworkIdentifier string

type Config struct {
	ServingAddress   string
	UseNetwork       NetworkIdentifier
	LivenessInterval int // seconds, 0 means default
	Networks         []NetworkOption
}

// NetworkOption is one selectable wallet endpoint. The option set is fixed
// at process start; at most one option may be marked local.
type NetworkOption struct {
	Title       string
	Identifier  NetworkIdentifier
	RPCs        []string
	ServiceURLs []string
	IsLocal     bool
}

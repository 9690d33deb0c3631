package common

var DefaultConfig = Config{
	ServingAddress:   "0.0.0.0:8989",
	UseNetwork:       MainnetOption.Identifier,
	LivenessInterval: 10,
	Networks:         []NetworkOption{MainnetOption, DevnetOption, LocalhostOption},
}

var MainnetOption = NetworkOption{
	Title:       "Mainnet",
	Identifier:  "mainnet",
	RPCs:        []string{"https://lb-fullnode.incognito.org/fullnode"},
	ServiceURLs: []string{"https://api-coinservice.incognito.org"},
}

var DevnetOption = NetworkOption{
	Title:       "Devnet",
	Identifier:  "devnet",
	RPCs:        []string{"https://testnet.incognito.org/fullnode"},
	ServiceURLs: []string{"https://api-coinservice-staging.incognito.org"},
}

var LocalhostOption = NetworkOption{
	Title:      "Localhost",
	Identifier: "localhost",
	RPCs:       []string{"http://127.0.0.1:9334"},
	IsLocal:    true,
}

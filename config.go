package main

import (
	"encoding/json"
	"os"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

var cfg common.Config

func loadConfig() error {
	config, err := os.ReadFile("config.json")
	if os.IsNotExist(err) {
		cfg = common.DefaultConfig
		return cfg.Validate()
	}
	if err != nil {
		return err
	}
	err = json.Unmarshal(config, &cfg)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

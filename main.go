package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/obsidianwallet/obsidian-netswitch/api"
	"github.com/obsidianwallet/obsidian-netswitch/chain"
	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/database"
	"github.com/obsidianwallet/obsidian-netswitch/netselect"
	"github.com/obsidianwallet/obsidian-netswitch/walletmanager"
)

const resyncInterval = 30 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	err := loadConfig()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	db, err := database.InitDatabase("obsidiandb")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	networkStore := database.NewNetworkStore(db)

	chainService, err := chain.NewService(cfg.Networks, cfg.UseNetwork, networkStore, log.With().Str("module", "chain").Logger())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx := context.Background()
	liveness := newLocalLiveness(ctx, cfg)

	controller, err := netselect.NewController(cfg.Networks, chainService, liveness, log.With().Str("module", "netselect").Logger())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	wlm, err := walletmanager.InitWallet(db)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apis, err := api.InitAPIService(cfg.ServingAddress, wlm, controller, chainService)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	chainService.AddNetworkUser(wlm)
	chainService.AddNetworkUser(apis)

	err = chainService.Start()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	go func() {
		ticker := time.NewTicker(resyncInterval)
		defer ticker.Stop()
		for range ticker.C {
			controller.Resync()
		}
	}()

	err = apis.Serve()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// newLocalLiveness wires the liveness cache to the configured local option.
// Without a local option nothing ever needs gating and the refresh loop is
// not started.
func newLocalLiveness(ctx context.Context, cfg common.Config) *netselect.LivenessCache {
	var local *common.NetworkOption
	for i := range cfg.Networks {
		if cfg.Networks[i].IsLocal {
			local = &cfg.Networks[i]
			break
		}
	}

	interval := time.Duration(cfg.LivenessInterval) * time.Second
	logger := log.With().Str("module", "liveness").Logger()
	if local == nil {
		return netselect.NewLivenessCache(func(context.Context) error { return nil }, interval, logger)
	}

	cache := netselect.NewLivenessCache(chain.Prober(*local), interval, logger)
	cache.Start(ctx)
	return cache
}

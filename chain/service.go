package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/incognitochain/go-incognito-sdk-v2/incclient"
	"github.com/rs/zerolog"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/database"
)

// Service owns the chain client and the persisted active network. It is the
// store the selection controller writes through: a switch attempt dials the
// target network first and persists only once the dial succeeded, so the
// persisted value never needs rolling back. Registered network users are
// re-pointed after the commit.
type Service struct {
	options map[common.NetworkIdentifier]common.NetworkOption
	store   *database.NetworkStore
	logger  zerolog.Logger
	dial    func(common.NetworkOption) (*incclient.IncClient, error)

	mu      sync.Mutex
	current common.NetworkIdentifier
	client  *incclient.IncClient
	users   []NetworkUser
}

func NewService(options []common.NetworkOption, useNetwork common.NetworkIdentifier, store *database.NetworkStore, logger zerolog.Logger) (*Service, error) {
	s := &Service{
		options: make(map[common.NetworkIdentifier]common.NetworkOption),
		store:   store,
		logger:  logger,
		dial:    dialClient,
	}
	for _, opt := range options {
		s.options[opt.Identifier] = opt
	}

	boot := useNetwork
	persisted, found, err := store.LoadCurrent()
	if err != nil {
		return nil, err
	}
	if found {
		if _, known := s.options[persisted]; known {
			boot = persisted
		} else {
			logger.Warn().Str("network", string(persisted)).Msg("persisted network no longer configured, falling back to config")
		}
	}

	opt, ok := s.options[boot]
	if !ok {
		return nil, fmt.Errorf("chain: network %q not found", boot)
	}

	client, err := s.dial(opt)
	if err != nil {
		return nil, fmt.Errorf("chain: can't use %q network: %w", boot, err)
	}

	if err := store.SaveCurrent(boot); err != nil {
		return nil, err
	}
	s.current = boot
	s.client = client
	return s, nil
}

func dialClient(option common.NetworkOption) (*incclient.IncClient, error) {
	return incclient.NewIncClientWithCache(option.RPCs[0], incclient.MainNetETHHost, 2, string(option.Identifier))
}

// Current returns the persisted active network identifier.
func (s *Service) Current() common.NetworkIdentifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Client returns the chain client for the active network.
func (s *Service) Client() *incclient.IncClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// Write attempts the cut-over to id: dial the target, then persist. The
// dial carries no side effects, so an error leaves the store exactly as
// before. A context cancelled before the commit point (a superseded
// attempt) also leaves everything untouched. Settled attempts, success or
// failure, are appended to the switch trail.
func (s *Service) Write(ctx context.Context, id common.NetworkIdentifier) error {
	opt, ok := s.options[id]
	if !ok {
		return fmt.Errorf("chain: network %q not found", id)
	}

	client, dialErr := s.dial(opt)

	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.current

	// Superseded attempts settle silently: no trail record, no mutation.
	if err := ctx.Err(); err != nil {
		return err
	}
	if dialErr != nil {
		err := fmt.Errorf("chain: can't use %q network: %w", id, dialErr)
		s.appendTrail(from, id, err)
		return err
	}

	if err := s.store.SaveCurrent(id); err != nil {
		s.appendTrail(from, id, err)
		return err
	}
	s.current = id
	s.client = client
	s.appendTrail(from, id, nil)

	s.switchUsersLocked(opt, client)
	return nil
}

func (s *Service) appendTrail(from, to common.NetworkIdentifier, cause error) {
	rec := database.SwitchRecord{
		From:      from,
		To:        to,
		Succeeded: cause == nil,
		At:        time.Now(),
	}
	if cause != nil {
		rec.Error = cause.Error()
	}
	if err := s.store.AppendSwitch(rec); err != nil {
		s.logger.Warn().Err(err).Msg("failed to append switch record")
	}
}

// switchUsersLocked re-points every registered user at the new network.
// This runs after the commit; a user error cannot undo the switch and is
// only logged.
func (s *Service) switchUsersLocked(option common.NetworkOption, client *incclient.IncClient) {
	for _, u := range s.users {
		if err := u.Stop(); err != nil {
			s.logger.Warn().Err(err).Msg("network user failed to stop")
		}
	}
	for _, u := range s.users {
		if err := u.SwitchNetwork(option, client); err != nil {
			s.logger.Warn().Err(err).Msg("network user failed to switch")
		}
	}
	for _, u := range s.users {
		if err := u.Start(); err != nil {
			s.logger.Warn().Err(err).Msg("network user failed to start")
		}
	}
}

func (s *Service) AddNetworkUser(user NetworkUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
}

// Start points every registered user at the boot network.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	option := s.options[s.current]
	for _, u := range s.users {
		if err := u.SwitchNetwork(option, s.client); err != nil {
			return err
		}
	}
	for _, u := range s.users {
		if err := u.Start(); err != nil {
			return err
		}
	}
	return nil
}

// History returns the most recent settled switch attempts, newest first.
func (s *Service) History(limit int) ([]database.SwitchRecord, error) {
	return s.store.ListSwitches(limit)
}

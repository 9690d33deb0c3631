package netselect

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

// Controller owns which network option is checked, which options are
// selectable, and the asynchronous attempt to switch the active network.
// It is a two-state machine per instance:
//
// Idle(active)          --RequestSwitch(t), t != active--> Switching(active, t)
// Switching(active, t)  --RequestSwitch(t')-------------> Switching(active, t')
// Switching(active, t)  --write ok----------------------> Idle(t)
// Switching(active, t)  --write err---------------------> Idle(active)
//
// Superseding an attempt discards its eventual outcome and cancels its
// context so the committer can abort before the commit point. A write that
// commits anyway is picked up later through Resync, like any other external
// store change.
type Controller struct {
	options map[common.NetworkIdentifier]common.NetworkOption
	order   []common.NetworkOption
	store   Store
	live    Liveness
	logger  zerolog.Logger

	mu           sync.Mutex
	active       common.NetworkIdentifier
	pending      *common.NetworkIdentifier
	cancel       context.CancelFunc
	attempt      uint64 // newest attempt seq; older attempts settle into a discard
	settled      uint64 // attempts whose outcome has been processed, discards included
	switchFailed bool
}

func NewController(options []common.NetworkOption, store Store, live Liveness, logger zerolog.Logger) (*Controller, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("netselect: no network options configured")
	}

	ctrl := &Controller{
		options: make(map[common.NetworkIdentifier]common.NetworkOption),
		order:   append([]common.NetworkOption(nil), options...),
		store:   store,
		live:    live,
		logger:  logger,
	}
	localSeen := false
	for _, opt := range options {
		if _, dup := ctrl.options[opt.Identifier]; dup {
			return nil, fmt.Errorf("netselect: duplicate network identifier %q", opt.Identifier)
		}
		if opt.IsLocal {
			if localSeen {
				return nil, fmt.Errorf("netselect: more than one local network option")
			}
			localSeen = true
		}
		ctrl.options[opt.Identifier] = opt
	}

	current := store.Current()
	if _, ok := ctrl.options[current]; !ok {
		return nil, fmt.Errorf("netselect: store holds unknown network %q", current)
	}
	ctrl.active = current
	return ctrl, nil
}

// RequestSwitch starts an asynchronous switch to target. Unknown or
// currently disabled targets are rejected synchronously with no state
// change. Requesting the active network while idle is a no-op; requesting
// it while a switch is pending abandons the pending attempt and returns to
// idle without touching the store. Any other request supersedes whatever is
// in flight: the newest target wins and the superseded attempt's outcome is
// discarded when it eventually resolves.
func (c *Controller) RequestSwitch(ctx context.Context, target common.NetworkIdentifier) error {
	opt, ok := c.options[target]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNetwork, target)
	}
	if opt.IsLocal && !c.live.Live() {
		return fmt.Errorf("%w: %q", ErrNetworkDisabled, target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if target == c.active {
		if c.pending != nil {
			// Revert to the active network: nothing to write, just abandon
			// the in-flight attempt.
			c.abandonLocked()
			c.switchFailed = false
			c.logger.Info().Str("network", string(target)).Msg("switch reverted to active network")
		}
		return nil
	}

	if c.pending != nil {
		c.abandonLocked()
	}
	c.attempt++
	seq := c.attempt
	pending := target
	c.pending = &pending
	c.switchFailed = false

	attemptCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.logger.Info().Str("from", string(c.active)).Str("to", string(target)).Msg("switching network")

	go func() {
		err := c.store.Write(attemptCtx, target)
		c.settle(seq, target, err)
	}()
	return nil
}

// abandonLocked supersedes the in-flight attempt: its eventual outcome will
// be discarded and its context cancelled so the committer can abort before
// the commit point. Callers must hold c.mu.
func (c *Controller) abandonLocked() {
	c.attempt++
	c.pending = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) settle(seq uint64, target common.NetworkIdentifier, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settled++

	if seq != c.attempt {
		c.logger.Debug().Str("network", string(target)).Msg("superseded switch outcome discarded")
		return
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = nil
	if err != nil {
		c.switchFailed = true
		c.logger.Warn().Err(err).Str("network", string(target)).Msg("network switch failed, keeping current network")
		return
	}
	c.active = target
	c.logger.Info().Str("network", string(target)).Msg("network switch confirmed")
}

// Resync adopts the store's value when it was changed by someone other than
// this controller. While a switch is pending the pending attempt stays
// authoritative and the store value is left to the settle path.
func (c *Controller) Resync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return
	}
	current := c.store.Current()
	if current == c.active {
		return
	}
	if _, ok := c.options[current]; !ok {
		c.logger.Warn().Str("network", string(current)).Msg("store holds unknown network, ignoring")
		return
	}
	c.logger.Info().Str("from", string(c.active)).Str("to", string(current)).Msg("adopting externally changed network")
	c.active = current
}

// Options returns the configured options in configuration order.
func (c *Controller) Options() []common.NetworkOption {
	return append([]common.NetworkOption(nil), c.order...)
}

// Views renders the presentation contract for every configured option.
// While a switch is pending the pending option is the checked one.
func (c *Controller) Views() []OptionView {
	c.mu.Lock()
	defer c.mu.Unlock()

	checked := c.active
	if c.pending != nil {
		checked = *c.pending
	}
	busy := c.pending != nil

	views := make([]OptionView, 0, len(c.order))
	for _, opt := range c.order {
		views = append(views, OptionView{
			Option:    opt,
			IsChecked: opt.Identifier == checked,
			IsEnabled: !opt.IsLocal || c.live.Live(),
			IsBusy:    busy,
		})
	}
	return views
}

func (c *Controller) Active() common.NetworkIdentifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// ConsumeSwitchFailure reports whether the most recent attempt failed and
// clears the flag, so each failure is observable exactly once.
func (c *Controller) ConsumeSwitchFailure() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	failed := c.switchFailed
	c.switchFailed = false
	return failed
}

func (c *Controller) settledCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}

package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/incognitochain/go-incognito-sdk-v2/incclient"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/netselect"
)

func (api *APIService) ListNetworks(c *gin.Context) {
	views := api.ctrl.Views()
	result := make([]NetworkView, 0, len(views))
	for _, view := range views {
		result = append(result, NetworkView{
			Title:      view.Option.Title,
			Identifier: string(view.Option.Identifier),
			IsLocal:    view.Option.IsLocal,
			IsChecked:  view.IsChecked,
			IsEnabled:  view.IsEnabled,
			IsBusy:     view.IsBusy,
		})
	}
	c.JSON(200, gin.H{"result": result})
}

func (api *APIService) CurrentNetwork(c *gin.Context) {
	active := api.ctrl.Active()
	for _, view := range api.ctrl.Views() {
		if view.Option.Identifier == active {
			c.JSON(200, gin.H{
				"result":      string(active),
				"title":       view.Option.Title,
				"serviceURLs": view.Option.ServiceURLs,
			})
			return
		}
	}
	c.JSON(200, gin.H{"result": string(active)})
}

func (api *APIService) SwitchNetworkRequest(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}

	// The attempt outlives this request; the request context would cancel
	// it as soon as the response is written.
	err := api.ctrl.RequestSwitch(context.Background(), common.NetworkIdentifier(req.Network))
	if err != nil {
		status := "rejected"
		if !errors.Is(err, netselect.ErrUnknownNetwork) && !errors.Is(err, netselect.ErrNetworkDisabled) {
			status = "failed"
		}
		c.JSON(200, gin.H{"error": err.Error(), "status": status})
		return
	}
	c.JSON(200, gin.H{"result": "ok", "busy": api.ctrl.Busy()})
}

// NetworkStatus reports the busy flag and consumes the one-shot failure
// flag: a failed switch is reported exactly once.
func (api *APIService) NetworkStatus(c *gin.Context) {
	c.JSON(200, gin.H{
		"busy":         api.ctrl.Busy(),
		"switchFailed": api.ctrl.ConsumeSwitchFailure(),
	})
}

func (api *APIService) SwitchNetworkHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(200, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	records, err := api.history.History(limit)
	if err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": records})
}

func (api *APIService) Stop() error {
	return nil
}

func (api *APIService) Start() error {
	return nil
}

func (api *APIService) SwitchNetwork(network common.NetworkOption, client *incclient.IncClient) error {
	api.lock.Lock()
	defer api.lock.Unlock()
	api.incclient = client
	return nil
}

package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/obsidianwallet/obsidian-netswitch/walletmanager"
)

func InitAPIService(address string, wlm *walletmanager.WalletManager, ctrl NetworkController, history SwitchHistory) (*APIService, error) {
	api := &APIService{
		address: address,
		wlm:     wlm,
		ctrl:    ctrl,
		history: history,
	}
	return api, nil
}

func (api *APIService) Serve() error {
	log.Info().Str("address", api.address).Msg("initiating api-service...")
	return api.buildRouter().Run(api.address)
}

func (api *APIService) buildRouter() *gin.Engine {
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "HEAD", "OPTIONS", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	apiv1 := r.Group("/v1")

	nw := apiv1.Group("/network")
	nw.GET("/list", api.ListNetworks)
	nw.GET("/current", api.CurrentNetwork)
	nw.POST("/switch", api.SwitchNetworkRequest)
	nw.GET("/status", api.NetworkStatus)
	nw.GET("/history", api.SwitchNetworkHistory)

	wl := apiv1.Group("/wallet")
	wl.GET("/list_accounts", api.ListAccounts)
	wl.POST("/create_account", api.CreateAccount)
	wl.POST("/update_account", api.UpdateAccount)
	wl.GET("/delete_account", api.DeleteAccount)
	wl.GET("/get_account", api.GetAccount)
	wl.POST("/watch_token", api.WatchToken)

	return r
}

func (api *APIService) ListAccounts(c *gin.Context) {
	accounts, err := api.wlm.ListAccounts()
	if err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": accounts})
}

func (api *APIService) CreateAccount(c *gin.Context) {
	var account walletmanager.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	key, err := api.wlm.AddNewAccount(account)
	if err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": key})
}

func (api *APIService) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	acc := api.wlm.GetAccountInstance(req.Account)
	if acc == nil {
		c.JSON(200, gin.H{"error": "account not found"})
		return
	}
	if err := acc.UpdateInfo(req.Name, req.Note); err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": "ok"})
}

func (api *APIService) DeleteAccount(c *gin.Context) {
	account := c.Query("account")
	if err := api.wlm.DeleteAccount(account); err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": "ok"})
}

func (api *APIService) GetAccount(c *gin.Context) {
	account := c.Query("account")
	acc := api.wlm.GetAccountInstance(account)
	if acc == nil {
		c.JSON(200, gin.H{"error": "account not found"})
		return
	}
	c.JSON(200, gin.H{"result": acc.Account()})
}

func (api *APIService) WatchToken(c *gin.Context) {
	account := c.Query("account")
	tokenid := c.Query("tokenid")
	action := c.Query("action")
	acc := api.wlm.GetAccountInstance(account)

	if acc == nil {
		c.JSON(200, gin.H{"error": "account not found"})
		return
	}
	if action == "remove" {
		err := acc.RemoveWatchToken(tokenid)
		if err != nil {
			c.JSON(200, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"result": "ok"})
		return
	}
	err := acc.AddWatchToken(tokenid)
	if err != nil {
		c.JSON(200, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"result": "ok"})
}

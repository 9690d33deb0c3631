package walletmanager

const (
	dbAccountInfoPrefix = "wlmacc-info-"
)

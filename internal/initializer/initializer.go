package initializer

import (
	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/gridmarket/go-compute-market/conf"
	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/internal/market"
	"github.com/gridmarket/go-compute-market/wallet"
)

// ProjectInit loads config, wires the stores and the payment sender into the
// lifecycle controller, and starts the settlement worker.
func ProjectInit(marketRepoPath string) {
	if err := conf.InitConfig(marketRepoPath); err != nil {
		logs.GetLogger().Fatal(err)
	}

	var resourceStore market.ResourceStore
	if conf.GetConfig().REDIS.RedisUrl != "" {
		resourceStore = market.NewRedisResourceStore(market.GetRedisPool())
	} else {
		resourceStore = market.NewMemoryResourceStore()
	}

	localWallet, err := wallet.SetupWallet(conf.GetConfig().CHAIN.KeystorePath)
	if err != nil {
		logs.GetLogger().Fatalf("Failed open wallet keystore, error: %+v", err)
	}
	sender := wallet.NewEthSender(conf.GetConfig().CHAIN.RpcUrl, localWallet)

	controller := market.NewController(
		resourceStore,
		market.NewMemoryTaskStore(),
		market.NewMemoryTransactionLedger(),
		sender,
	)
	market.InitMarketService(controller)

	if seedFile := conf.GetConfig().MARKET.SeedFile; seedFile != "" {
		if err := controller.LoadSeedCatalog(seedFile); err != nil {
			logs.GetLogger().Errorf("Failed load seed catalog, error: %+v", err)
		}
	}

	if conf.GetConfig().REDIS.RedisUrl != "" {
		celeryService := market.NewCeleryService()
		celeryService.RegisterTask(constants.TASK_SETTLE, market.SettleTask)
		celeryService.Start()
	}
}

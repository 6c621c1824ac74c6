package main

import (
	"os"
	"strconv"
	"time"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	cors "github.com/itsjamie/gin-cors"
	"github.com/joho/godotenv"
	"github.com/gridmarket/go-compute-market/conf"
	"github.com/gridmarket/go-compute-market/internal/initializer"
	"github.com/gridmarket/go-compute-market/routers"
	"github.com/gridmarket/go-compute-market/util"
	"github.com/urfave/cli/v2"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "Start a marketplace node",
	Action: func(cctx *cli.Context) error {
		logs.GetLogger().Info("Start in marketplace mode.")

		marketRepoPath := cctx.String(FlagMarketRepo)
		os.Setenv("MARKET_PATH", marketRepoPath)
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			logs.GetLogger().Error(err)
		}
		initializer.ProjectInit(marketRepoPath)

		r := gin.Default()
		r.Use(cors.Middleware(cors.Config{
			Origins:         "*",
			Methods:         "GET, PUT, POST, DELETE",
			RequestHeaders:  "Origin, Authorization, Content-Type",
			ExposedHeaders:  "",
			MaxAge:          50 * time.Second,
			ValidateHeaders: false,
		}))
		pprof.Register(r)

		v1 := r.Group("/api/v1")
		routers.MarketManager(v1.Group("/market"))

		shutdownChan := make(chan struct{})
		httpStopper, err := util.ServeHttp(r, "market-api", ":"+strconv.Itoa(conf.GetConfig().API.Port))
		if err != nil {
			logs.GetLogger().Fatalf("failed to start market-api endpoint: %s", err)
		}

		finishCh := util.MonitorShutdown(shutdownChan,
			util.ShutdownHandler{Component: "market-api", StopFunc: httpStopper},
		)
		<-finishCh

		return nil
	},
}

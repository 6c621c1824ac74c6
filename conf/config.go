package conf

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var config *MarketNode

// MarketNode is a marketplace node config
type MarketNode struct {
	API    API
	REDIS  REDIS
	CHAIN  CHAIN
	MARKET MARKET
}

type API struct {
	Port     int
	NodeName string
}

type REDIS struct {
	RedisUrl      string
	RedisPassword string
}

type CHAIN struct {
	RpcUrl       string
	KeystorePath string
}

type MARKET struct {
	SeedFile string
}

func InitConfig(marketRepoPath string) error {
	configFile := filepath.Join(marketRepoPath, "config.toml")

	if metaData, err := toml.DecodeFile(configFile, &config); err != nil {
		return fmt.Errorf("failed load config file, path: %s, error: %w", configFile, err)
	} else {
		if !requiredFieldsAreGiven(metaData) {
			log.Fatal("Required fields not given")
		}
	}
	return nil
}

func GetConfig() *MarketNode {
	return config
}

func requiredFieldsAreGiven(metaData toml.MetaData) bool {
	requiredFields := [][]string{
		{"API"},
		{"REDIS"},
		{"CHAIN"},

		{"API", "Port"},

		{"REDIS", "RedisUrl"},

		{"CHAIN", "RpcUrl"},
		{"CHAIN", "KeystorePath"},
	}

	for _, v := range requiredFields {
		if !metaData.IsDefined(v...) {
			log.Fatal("Required fields ", v)
		}
	}

	return true
}

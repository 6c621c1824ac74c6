package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gridmarket/go-compute-market/conf"
)

// reads the local node's API; the CLI is a thin client over it.
func marketApi(path string) ([]byte, error) {
	marketPath, exit := os.LookupEnv("MARKET_PATH")
	if !exit {
		return nil, fmt.Errorf("missing MARKET_PATH env, please set export MARKET_PATH=xxx")
	}
	if err := conf.InitConfig(marketPath); err != nil {
		return nil, fmt.Errorf("load config file failed, error: %+v", err)
	}

	url := fmt.Sprintf("http://localhost:%d/api/v1/market%s", conf.GetConfig().API.Port, path)
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed send a request, error: %+v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed, url: %s, status code: %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func decodeData(payload []byte, out interface{}) error {
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}

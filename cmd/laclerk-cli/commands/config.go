package commands

import (
	"laclerk-backend/lib/configutil"
	"laclerk-backend/lib/restyutil"
	"laclerk-backend/lib/scrapers/lacityclerk"
	"laclerk-backend/lib/util/serviceutil"
)

type Config struct {
	// defaults to the public clerk system endpoint
	BaseUrl string   `json:"base_url"`
	FileIds []string `json:"file_ids"`
	Db      string   `json:"db"`
	RawDir  string   `json:"raw_dir"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Db == "" {
		cfg.Db = "laclerk.db"
	}
	if cfg.RawDir == "" {
		cfg.RawDir = "extracted_raw"
	}
	return cfg
}

func newClient(cfg Config, dumpHttp bool) *lacityclerk.Client {
	opts := lacityclerk.ClientOptions{BaseUrl: cfg.BaseUrl}
	if dumpHttp {
		opts.InstrumentOutput = restyutil.NewFilesystemOutput(".dev/resty/laclerk")
	}
	return lacityclerk.NewClient(opts)
}

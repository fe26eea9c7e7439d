package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type shop struct {
	APIURL            string  `mapstructure:"api_url"`
	Currency          string  `mapstructure:"currency"`
	ShippingCost      float64 `mapstructure:"shipping_cost"`
	WhatsAppNumber    string  `mapstructure:"whatsapp_number"`
	DefaultImageURL   string  `mapstructure:"default_image_url"`
	LowStockThreshold int     `mapstructure:"low_stock_threshold"`
}

type broker struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ClientEventsTopic  string   `mapstructure:"client_events_topic"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Shop           shop       `mapstructure:"shop"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Shop:
	APIURL=%q
	Currency=%q
	ShippingCost=%v
	WhatsAppNumber=%q
	DefaultImageURL=%q
	LowStockThreshold=%d

	Broker:
	Enabled=%v
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ClientEventsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Shop.APIURL,
		c.Shop.Currency,
		c.Shop.ShippingCost,
		c.Shop.WhatsAppNumber,
		c.Shop.DefaultImageURL,
		c.Shop.LowStockThreshold,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ClientEventsTopic,
	)
}

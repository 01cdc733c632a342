package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	config GlobalConfig
	once   sync.Once

	// The two listing entry points historically used different page
	// sizes (plain listing vs keyword search). Both are plain config
	// and can be changed at runtime without a restart.
	ListPageSize   int
	SearchPageSize int

	updateDebounceTimer *time.Timer
)

const debounceDuration = 1 * time.Second

type GlobalConfig struct {
	DBConfig    DBConf    `yaml:"db" mapstructure:"db"`
	RedisConfig RedisConf `yaml:"redis" mapstructure:"redis"`
	JWTConfig   JWTConf   `yaml:"jwt" mapstructure:"jwt"`
}

type DBConf struct {
	Host        string `yaml:"host" mapstructure:"host"`
	Port        string `yaml:"port" mapstructure:"port"`
	User        string `yaml:"user" mapstructure:"user"`
	Password    string `yaml:"password" mapstructure:"password"`
	Dbname      string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdleConn int    `yaml:"max_idle_conn" mapstructure:"max_idle_conn"`
	MaxOpenConn int    `yaml:"max_open_conn" mapstructure:"max_open_conn"`
	MaxIdleTime int64  `yaml:"max_idle_time" mapstructure:"max_idle_time"`
}

type RedisConf struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	DB       int    `yaml:"rdb" mapstructure:"rdb"`
	Password string `yaml:"passwd" mapstructure:"passwd"`
	PoolSize int    `yaml:"poolsize" mapstructure:"poolsize"`
}

type JWTConf struct {
	SigningKey string        `yaml:"signing_key" mapstructure:"signing_key"`
	TokenTTL   time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

func GetGlobalConf() *GlobalConfig {
	once.Do(readConf)
	return &config
}

func readConf() {
	viper.SetDefault("db.host", "127.0.0.1")
	viper.SetDefault("db.port", "3306")
	viper.SetDefault("db.user", "root")
	viper.SetDefault("db.dbname", "board")
	viper.SetDefault("db.max_idle_conn", 10)
	viper.SetDefault("db.max_open_conn", 100)
	viper.SetDefault("db.max_idle_time", 600)
	viper.SetDefault("redis.addr", "127.0.0.1:6379")
	viper.SetDefault("redis.poolsize", 10)
	viper.SetDefault("jwt.signing_key", "dev-only-signing-key")
	viper.SetDefault("jwt.token_ttl", 30*24*time.Hour)
	viper.SetDefault("page_size.list", 10)
	viper.SetDefault("page_size.search", 15)

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../config")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			panic("read config file err: " + err.Error())
		}
		zap.S().Infow("no config file found, using defaults")
	}
	if err := viper.Unmarshal(&config); err != nil {
		panic("config file unmarshal err: " + err.Error())
	}

	ListPageSize = viper.GetInt("page_size.list")
	SearchPageSize = viper.GetInt("page_size.search")

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		if updateDebounceTimer != nil {
			updateDebounceTimer.Stop()
		}
		updateDebounceTimer = time.AfterFunc(debounceDuration, func() {
			if err := viper.ReadInConfig(); err != nil {
				zap.S().Errorw("config reload failed", "err", err)

				return
			}
			ListPageSize = viper.GetInt("page_size.list")
			SearchPageSize = viper.GetInt("page_size.search")
			zap.S().Infow("config reloaded",
				"list_page_size", ListPageSize,
				"search_page_size", SearchPageSize)
		})
	})
}

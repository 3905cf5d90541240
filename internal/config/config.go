// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
// Конфиг загружается один раз при старте процесса и передаётся по ссылке,
// внутри бизнес-логики обращений к переменным окружения нет.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env                     string   `yaml:"env" env-default:"local"`
	StorageConnectionString string   `yaml:"storage_connection_string"`
	MigrationsPath          string   `yaml:"migrations_path" env-default:"./migrations"`
	CORSOrigins             []string `yaml:"cors_origins"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Tokens                  `yaml:"tokens"`
	MediaStore              `yaml:"media_store"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// TokenDomain секреты и время жизни токенов одного домена подписи.
// У пользователей и администраторов секреты независимы: токен, подписанный
// в одном домене, не проходит проверку секретом другого.
type TokenDomain struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl" env-default:"1h"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" env-default:"240h"`
}

// Tokens настройки подписи токенов по доменам.
type Tokens struct {
	User  TokenDomain `yaml:"user"`
	Admin TokenDomain `yaml:"admin"`
}

// MediaStore параметры внешнего медиа-хранилища.
type MediaStore struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

// RabbitMQ параметры подключения к брокеру событий.
// Пустой URL отключает публикацию событий.
type RabbitMQ struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange" env-default:"registry.events"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// При любой ошибке завершает процесс.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	ASTO            ASTO            `mapstructure:",squash"`
	ELIQ            ELIQ            `mapstructure:",squash"`
	Ingest          Ingest          `mapstructure:",squash"`
	Portfolio       Portfolio       `mapstructure:",squash"`
	KPISnapshotSync KPISnapshotSync `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// ASTO é a integração de recebíveis. A API não devolve o CNPJ do cliente,
// então a sincronização fica desligada por padrão até o contrato de dados
// ser corrigido pelo parceiro.
type ASTO struct {
	URL            string `mapstructure:"asto_url"`
	User           string `mapstructure:"asto_user"`
	Password       string `mapstructure:"asto_password"`
	TimeoutSeconds int    `mapstructure:"asto_timeout_seconds"`
	SyncEnabled    bool   `mapstructure:"asto_sync_enabled"`
}

type ELIQ struct {
	URL            string `mapstructure:"eliq_url"`
	AccessToken    string `mapstructure:"eliq_access_token"`
	TimeoutSeconds int    `mapstructure:"eliq_timeout_seconds"`
}

type Ingest struct {
	BatchSize         int `mapstructure:"ingest_batch_size"`
	FlushDelaySeconds int `mapstructure:"ingest_flush_delay_seconds"`
}

type Portfolio struct {
	CacheTTLMinutes int `mapstructure:"portfolio_cache_ttl_minutes"`
}

type KPISnapshotSync struct {
	CronSchedule string `mapstructure:"kpi_snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"kpi_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bi_comercial")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ASTO_URL", "https://api.asto.com.br/v1")
	viper.SetDefault("ASTO_USER", "")
	viper.SetDefault("ASTO_PASSWORD", "")
	viper.SetDefault("ASTO_TIMEOUT_SECONDS", 120) // A API do parceiro é lenta em períodos longos
	viper.SetDefault("ASTO_SYNC_ENABLED", false)  // Sem CNPJ no retorno, toda venda viraria órfã

	viper.SetDefault("ELIQ_URL", "https://api.eliq.com.br/v1")
	viper.SetDefault("ELIQ_ACCESS_TOKEN", "your_access_token")
	viper.SetDefault("ELIQ_TIMEOUT_SECONDS", 30)

	viper.SetDefault("INGEST_BATCH_SIZE", 450)       // Folga abaixo do limite de 500 por lote
	viper.SetDefault("INGEST_FLUSH_DELAY_SECONDS", 1) // Pausa entre lotes para não saturar o banco

	viper.SetDefault("PORTFOLIO_CACHE_TTL_MINUTES", 10)

	viper.SetDefault("KPI_SNAPSHOT_SYNC_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("KPI_SNAPSHOT_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// validate barra na subida configurações que deixariam o serviço em estado
// inconsistente em vez de falhar no meio de uma carga
func (c *Config) validate() error {
	if c.Ingest.BatchSize <= 0 || c.Ingest.BatchSize > 500 {
		return fmt.Errorf("configuração inválida: INGEST_BATCH_SIZE deve estar entre 1 e 500, recebido %d", c.Ingest.BatchSize)
	}
	if c.Ingest.FlushDelaySeconds < 0 {
		return fmt.Errorf("configuração inválida: INGEST_FLUSH_DELAY_SECONDS não pode ser negativo")
	}
	if c.Portfolio.CacheTTLMinutes <= 0 {
		return fmt.Errorf("configuração inválida: PORTFOLIO_CACHE_TTL_MINUTES deve ser positivo")
	}
	if c.ASTO.SyncEnabled && (c.ASTO.User == "" || c.ASTO.Password == "") {
		return fmt.Errorf("configuração inválida: sincronização ASTO habilitada sem ASTO_USER/ASTO_PASSWORD")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

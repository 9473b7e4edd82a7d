package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/pos-ledger-api/pkg/utils"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Ledger     Ledger     `mapstructure:",squash"`
	Backup     Backup     `mapstructure:",squash"`
	BackupSync BackupSync `mapstructure:",squash"`
	Restore    Restore    `mapstructure:",squash"`
	S3Mirror   S3Mirror   `mapstructure:",squash"`
}

type App struct {
	LogLevel string         `mapstructure:"log_level"`
	Env      string         `mapstructure:"app_env"`
	Timezone string         `mapstructure:"timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Ledger struct {
	ListDefaultLimit int `mapstructure:"sales_list_default_limit"`
}

type Backup struct {
	Dir           string `mapstructure:"backup_dir"`
	OnMutation    bool   `mapstructure:"backup_on_mutation"`
	BucketMinutes int    `mapstructure:"backup_bucket_minutes"`
	StartHour     int    `mapstructure:"backup_start_hour"`
	EndHour       int    `mapstructure:"backup_end_hour"`
}

type BackupSync struct {
	CronSchedule string `mapstructure:"backup_sync_cron"`
	Enabled      bool   `mapstructure:"backup_sync_enabled"`
}

type Restore struct {
	Window  time.Duration `mapstructure:"restore_window"`
	Anytime bool          `mapstructure:"allow_restore_anytime"`
}

type S3Mirror struct {
	Enabled   bool   `mapstructure:"s3_mirror_enabled"`
	Bucket    string `mapstructure:"s3_mirror_bucket"`
	Region    string `mapstructure:"s3_mirror_region"`
	Endpoint  string `mapstructure:"s3_mirror_endpoint"`
	PathStyle bool   `mapstructure:"s3_mirror_path_style"`
	Prefix    string `mapstructure:"s3_mirror_prefix"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "")
	viper.SetDefault("TIMEZONE", "Local")

	viper.SetDefault("SALES_LIST_DEFAULT_LIMIT", 150)

	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_ON_MUTATION", true) // Backup após cada venda, remoção ou conclusão de pedido
	viper.SetDefault("BACKUP_BUCKET_MINUTES", 30)

	// Filtro de horário do relatório gravado, [início, fim)
	viper.SetDefault("BACKUP_START_HOUR", 0)
	viper.SetDefault("BACKUP_END_HOUR", 24)

	viper.SetDefault("BACKUP_SYNC_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("BACKUP_SYNC_ENABLED", false)

	viper.SetDefault("RESTORE_WINDOW", "180000ms") // 3 minutos após o boot
	viper.SetDefault("ALLOW_RESTORE_ANYTIME", false)

	viper.SetDefault("S3_MIRROR_ENABLED", false)
	viper.SetDefault("S3_MIRROR_BUCKET", "")
	viper.SetDefault("S3_MIRROR_REGION", "us-east-1")
	viper.SetDefault("S3_MIRROR_ENDPOINT", "")
	viper.SetDefault("S3_MIRROR_PATH_STYLE", false)
	viper.SetDefault("S3_MIRROR_PREFIX", "")
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
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.App.Location = loadLocation(config.App.Timezone)
	config.normalize()

	return config, nil
}

// normalize corrige valores fora dos intervalos aceitos
func (c *Config) normalize() {
	if c.Ledger.ListDefaultLimit <= 0 {
		c.Ledger.ListDefaultLimit = 150
	}

	c.Backup.BucketMinutes = utils.ClampBucketMinutes(c.Backup.BucketMinutes)

	if c.Backup.StartHour < 0 || c.Backup.StartHour > 24 {
		logrus.WithField("backup_start_hour", c.Backup.StartHour).Warn("Hora inicial do backup inválida, usando 0")
		c.Backup.StartHour = 0
	}
	if c.Backup.EndHour < 0 || c.Backup.EndHour > 24 {
		logrus.WithField("backup_end_hour", c.Backup.EndHour).Warn("Hora final do backup inválida, usando 24")
		c.Backup.EndHour = 24
	}

	if c.Restore.Window < 0 {
		c.Restore.Window = 0
	}

	origins := make([]string, 0, len(c.Server.AllowedOrigins))
	for _, origin := range c.Server.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	c.Server.AllowedOrigins = origins
}

func loadLocation(name string) *time.Location {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.WithError(err).WithField("timezone", name).Warn("Fuso horário inválido, usando o fuso local")
		return time.Local
	}

	return loc
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
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	Secret        string `yaml:"secret" json:"secret"`
	AdminUsername string `yaml:"admin_username" json:"admin_username"`
	AdminPassword string `yaml:"admin_password" json:"admin_password"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// CloudinaryConfig carries the upload-widget credentials passed through to
// the product form templates. Read once at startup, never from the
// environment at request time.
type CloudinaryConfig struct {
	Name         string `yaml:"name" json:"name"`
	ApiKey       string `yaml:"api_key" json:"api_key"`
	UploadPreset string `yaml:"upload_preset" json:"upload_preset"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary" json:"cloudinary"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "tinymart",
		Location: "Asia/Singapore",
		Workdir:  "/var/tinymart",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1880,
		Secret:        "9b6de5cc-0731-4bf1-xpmu-0f568ac9da37",
		AdminUsername: "admin",
		AdminPassword: "tinymart",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "tinymart",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/tinymart/tinymart.log",
	},
	Cloudinary: CloudinaryConfig{},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := cast.ToIntE(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML configuration file when it exists and then
// applies TINYMART_* environment overrides on top.
func LoadConfig(cfile string) *AppConfig {
	appcfg := new(AppConfig)
	*appcfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appcfg)
		}
	}

	setEnvValue("TINYMART_SYSTEM_WORKDIR", func(v string) { appcfg.System.Workdir = v })
	setEnvBoolValue("TINYMART_SYSTEM_DEBUG", func(v bool) { appcfg.System.Debug = v })

	setEnvValue("TINYMART_WEB_HOST", func(v string) { appcfg.Web.Host = v })
	setEnvIntValue("TINYMART_WEB_PORT", func(v int) { appcfg.Web.Port = v })
	setEnvValue("TINYMART_WEB_SECRET", func(v string) { appcfg.Web.Secret = v })
	setEnvValue("TINYMART_WEB_ADMIN_USERNAME", func(v string) { appcfg.Web.AdminUsername = v })
	setEnvValue("TINYMART_WEB_ADMIN_PASSWORD", func(v string) { appcfg.Web.AdminPassword = v })

	setEnvValue("TINYMART_DB_TYPE", func(v string) { appcfg.Database.Type = v })
	setEnvValue("TINYMART_DB_HOST", func(v string) { appcfg.Database.Host = v })
	setEnvIntValue("TINYMART_DB_PORT", func(v int) { appcfg.Database.Port = v })
	setEnvValue("TINYMART_DB_NAME", func(v string) { appcfg.Database.Name = v })
	setEnvValue("TINYMART_DB_USER", func(v string) { appcfg.Database.User = v })
	setEnvValue("TINYMART_DB_PWD", func(v string) { appcfg.Database.Passwd = v })

	setEnvValue("TINYMART_CLOUDINARY_NAME", func(v string) { appcfg.Cloudinary.Name = v })
	setEnvValue("TINYMART_CLOUDINARY_API_KEY", func(v string) { appcfg.Cloudinary.ApiKey = v })
	setEnvValue("TINYMART_CLOUDINARY_UPLOAD_PRESET", func(v string) { appcfg.Cloudinary.UploadPreset = v })

	return appcfg
}

package config

import (
    "fmt"
    "log"
    "strings"

    "github.com/spf13/viper"
)

type Config struct {
    Server struct {
        Port     string
        LogLevel string
    }
    Data struct {
        Dir string
    }
    Agent struct {
        DefaultPersona string
        DefaultVoice   string
        DefaultStyle   string
    }
    Driver struct {
        TokenSecret   string
        TokenExpMin   int
        TokenSkewSecs int
    }
}

func Load() Config {
    v := viper.New()
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    // Defaults
    v.SetDefault("server.port", 8080)
    v.SetDefault("server.log_level", "info")

    v.SetDefault("data.dir", "data")

    v.SetDefault("agent.default_persona", "day1")
    v.SetDefault("agent.default_voice", "en-US-matthew")
    v.SetDefault("agent.default_style", "Conversation")

    v.SetDefault("driver.token_exp_min", 720)
    v.SetDefault("driver.token_skew_secs", 30)

    // Map envs
    v.BindEnv("server.port", "PORT")
    v.BindEnv("server.log_level", "LOG_LEVEL")

    v.BindEnv("data.dir", "DATA_DIR")

    v.BindEnv("agent.default_persona", "AGENT_DEFAULT_PERSONA")
    v.BindEnv("agent.default_voice", "AGENT_DEFAULT_VOICE")
    v.BindEnv("agent.default_style", "AGENT_DEFAULT_STYLE")

    v.BindEnv("driver.token_secret", "DRIVER_TOKEN_SECRET")
    v.BindEnv("driver.token_exp_min", "DRIVER_TOKEN_EXP_MIN")
    v.BindEnv("driver.token_skew_secs", "DRIVER_TOKEN_SKEW_SECS")

    var c Config
    c.Server.Port = toString(v.Get("server.port"))
    c.Server.LogLevel = v.GetString("server.log_level")

    c.Data.Dir = v.GetString("data.dir")

    c.Agent.DefaultPersona = v.GetString("agent.default_persona")
    c.Agent.DefaultVoice = v.GetString("agent.default_voice")
    c.Agent.DefaultStyle = v.GetString("agent.default_style")

    c.Driver.TokenSecret = v.GetString("driver.token_secret")
    c.Driver.TokenExpMin = v.GetInt("driver.token_exp_min")
    c.Driver.TokenSkewSecs = v.GetInt("driver.token_skew_secs")

    log.Printf("config loaded: port=%s data_dir=%s default_persona=%s", c.Server.Port, c.Data.Dir, c.Agent.DefaultPersona)
    return c
}

func toString(v any) string { return fmt.Sprint(v) }

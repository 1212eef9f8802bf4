package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"joker-poker-go/backend/internal/game/jokerpoker"
)

type Config struct {
	Addr         string
	DatabasePath string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	AppEnv                string
	WSAllowedOrigins      []string
	DevWebSocketsAllowAll bool

	// DefaultRules seed every new table; creators may override per table.
	DefaultRules jokerpoker.Rules
}

func LoadFromEnv() (Config, error) {
	ttlMinutes := int64(10080) // 7 days
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ttlMinutes = n
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: invalid JWT_TTL_MINUTES=%q, using default %d\n", v, ttlMinutes)
		}
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "joker-poker"
	}

	cfg := Config{
		Addr:         os.Getenv("BACKEND_ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    issuer,
		JWTTTL:       time.Duration(ttlMinutes) * time.Minute,
		AppEnv:       strings.TrimSpace(os.Getenv("APP_ENV")),
		DefaultRules: rulesFromEnv(),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEV_WEBSOCKETS_ALLOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevWebSocketsAllowAll = b
		}
	}

	var missing []string
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.DatabasePath == "" {
		missing = append(missing, "DATABASE_PATH")
	}
	// BACKEND_ADDR is optional when the hosting environment sets PORT.
	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		missing = append(missing, "BACKEND_ADDR (or PORT)")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing/invalid env: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// rulesFromEnv builds the server-wide default rules. Unset or invalid values
// fall back through Normalize to the engine defaults.
func rulesFromEnv() jokerpoker.Rules {
	r := jokerpoker.Rules{
		Ante:             envInt("GAME_ANTE"),
		HandSize:         envInt("GAME_HAND_SIZE"),
		MaxPlayCards:     envInt("GAME_MAX_PLAY_CARDS"),
		MaxDiscardCards:  envInt("GAME_MAX_DISCARD_CARDS"),
		PlaysPerRound:    envInt("GAME_PLAYS_PER_ROUND"),
		DiscardsPerRound: envInt("GAME_DISCARDS_PER_ROUND"),
		ShopSize:         envInt("GAME_SHOP_SIZE"),
		MaxJokers:        envInt("GAME_MAX_JOKERS"),
	}
	return r.Normalize()
}

func envInt(key string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		fmt.Fprintf(os.Stderr, "WARNING: invalid %s=%q, using default\n", key, v)
		return 0
	}
	return n
}

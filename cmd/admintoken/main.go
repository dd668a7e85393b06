package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/config"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/hashing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/token"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// admintoken token [-sub admin] : выпустить админский токен
// admintoken hash <password>    : bcrypt-хэш для ADMIN_PASSWORD_HASH
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cmd := "token"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "hash":
		if len(args) != 1 {
			log.Fatal("usage: admintoken hash <password>")
		}
		h, err := hashing.NewBcrypt(0).Hash(args[0])
		if err != nil {
			log.Fatal("failed to hash password", zap.Error(err))
		}
		fmt.Println(h)
	case "token":
		fsFlags := flag.NewFlagSet("token", flag.ExitOnError)
		sub := fsFlags.String("sub", "admin", "subject токена")
		_ = fsFlags.Parse(args)

		adm := config.LoadAdmin(log)
		p := token.NewHSProvider(adm.Secret, adm.Issuer, adm.Audience)
		tok, exp, err := p.Sign(*sub, string(service.RoleAdmin), adm.TokenTTL)
		if err != nil {
			log.Fatal("failed to sign admin token", zap.Error(err))
		}
		log.Info("admin token issued", zap.String("sub", *sub), zap.Time("expires_at", exp))
		fmt.Println(tok)
	default:
		log.Fatal("unknown command", zap.String("cmd", cmd))
	}
}

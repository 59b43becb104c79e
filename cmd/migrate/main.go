package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gostore/config"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
)

// gooseLogger encaminha as mensagens do goose para o logger da aplicação.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), map[string]interface{}{"component": "goose"})
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal("goose abortou.", fmt.Errorf(format, v...))
}

// Uso: go run ./cmd/migrate [-dir ./sql] [up|down|status|redo|version ...]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	migrationsDir := flag.String("dir", "./sql", "diretório com os arquivos de migração")
	flag.Parse()

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados para migração.", err)
	}
	defer db.Close()

	goose.SetLogger(gooseLogger{log: appLog})
	if err := goose.SetDialect("postgres"); err != nil {
		appLog.Fatal("Dialeto do goose inválido.", err)
	}

	command, args := "up", []string(nil)
	if rest := flag.Args(); len(rest) > 0 {
		command, args = rest[0], rest[1:]
	}

	if err := goose.Run(command, db, *migrationsDir, args...); err != nil {
		appLog.Fatal(fmt.Sprintf("goose %s falhou.", command), err)
	}

	appLog.Info("✅ Migração concluída.", map[string]interface{}{"command": command, "dir": *migrationsDir})
}

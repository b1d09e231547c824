package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/lifesevatra/doctor-server/lib"
)

const (
	// dataBasePath 設定ファイルのベースパス。
	dataBasePath = "data/config"
)

var appConfig *configuration

// configuration アプリケーション設定
//  `.env.{SERVER_ENV}` ファイルに含まれる設定値を取得し管理する
type configuration struct {
	Server ServerConfiguration
	Lang   lib.LanguageConfiguration
}

// ServerConfiguration サーバ設定情報。
type ServerConfiguration struct {
	Dump     bool
	LogLevel string `envconfig:"LOG_LEVEL"`
}

func SetupAll() {
	if appConfig == nil {
		env := strings.ToLower(os.Getenv("SERVER_ENV"))
		if len(env) == 0 {
			env = "test"
		}

		root := serverRoot()

		paths := []string{path.Join(root, dataBasePath, ".env."+env)}
		if err := godotenv.Load(paths...); err != nil {
			log.Fatalf("Failed to load %v: %v\n", paths, err)
		}

		load := func(prefix string, config interface{}) {
			err := envconfig.Process(prefix, config)
			if err != nil {
				log.Printf("An error occured during loading %#v\n", err)
			}
		}

		appConfig = &configuration{}
		load("server", &appConfig.Server)
		load("lang", &appConfig.Lang)

		lib.SetupI18n(root, &appConfig.Lang)

		setLogger()
	}
}

// serverRoot SERVER_ROOTが未設定の場合、このファイルの位置からリポジトリルートを導出する。
// テストが各パッケージのディレクトリで実行されても設定ファイルを参照できるようにする。
func serverRoot() string {
	if root := os.Getenv("SERVER_ROOT"); len(root) > 0 {
		return root
	}

	_, file, _, _ := runtime.Caller(0)

	return filepath.Dir(filepath.Dir(file))
}

type ContextHook struct{}

func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if pc, file, line, ok := runtime.Caller(10); ok {
		funcName := runtime.FuncForPC(pc).Name()
		entry.Data["source"] = fmt.Sprintf("%s:%v:%s", path.Base(file), line, path.Base(funcName))
	}

	return nil
}

func setLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	if level, err := logrus.ParseLevel(appConfig.Server.LogLevel); err != nil {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(level)
	}

	if appConfig.Server.Dump {
		logrus.AddHook(ContextHook{})
	}
}

func ServerConfig() *ServerConfiguration {
	return &appConfig.Server
}

package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/tsinghua-fib-lab/yellowlight-sim/task"
	"github.com/tsinghua-fib-lab/yellowlight-sim/ui"
	"github.com/tsinghua-fib-lab/yellowlight-sim/utils/config"
)

var (
	// 配置文件路径，与config-data都为空时使用默认配置
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 运行模式
	// headless：决策一次并按固定步长推进到动画结束，结果输出到日志
	// tui：终端交互界面
	// serve：提供connect RPC与websocket帧推送，供远程界面使用
	mode = flag.String("mode", "headless", "run mode (headless, tui, serve)")
	// 监听地址，非空时覆盖配置中的server.listen
	listen = flag.String("listen", "", "listening address in serve mode, overrides server.listen")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "yellowlight")
)

func loadConfig() config.Config {
	var file []byte
	var err error
	switch {
	case *configPath != "":
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	case *configData != "":
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	default:
		log.Info("no config specified, using defaults")
		return config.Default()
	}
	c, err := config.Parse(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	return c
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	c := loadConfig()
	if *listen != "" {
		c.Server.Listen = *listen
	}
	log.Infof("%+v", c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := task.NewContext(c)
	defer t.Close()
	if err := run(ctx, t, c); err != nil {
		log.Panicf("%v mode: %v", *mode, err)
	}
}

// run 按运行模式启动
func run(ctx context.Context, t *task.Context, c config.Config) error {
	switch *mode {
	case "headless":
		_, err := t.RunHeadless(ctx)
		return err
	case "tui":
		// 日志会破坏终端画面，界面运行期间只输出错误
		logrus.SetLevel(logrus.ErrorLevel)
		model := ui.New(t.SessionManager(), t.Rand())
		_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	case "serve":
		return t.Serve(ctx, c.Server.Listen)
	default:
		return fmt.Errorf("mode must be one of headless, tui, serve, got %q", *mode)
	}
}

package main

import (
	"flag"
	"fmt"

	"github.com/wheelease/wheelease/internal/app"
	"github.com/wheelease/wheelease/internal/common/config"
	"github.com/wheelease/wheelease/internal/common/logger"
	"github.com/wheelease/wheelease/internal/common/middleware"
	"github.com/wheelease/wheelease/internal/common/server"
	"github.com/wheelease/wheelease/internal/common/tracing"
)

var (
	configPath      = flag.String("config", "configs/rental-service.json", "配置文件路径")
	consulConfigKey = flag.String("config-consul-key", "", "从 Consul KV 加载配置的 key（优先于 -config）")
	consulHost      = flag.String("consul-host", "localhost", "Consul 地址（配合 -config-consul-key）")
	consulPort      = flag.Int("consul-port", 8500, "Consul 端口（配合 -config-consul-key）")
)

func main() {
	flag.Parse()

	// 加载配置：优先 Consul KV，其次本地文件
	var cfg *config.Config
	var err error
	if *consulConfigKey != "" {
		cfg, err = config.LoadConfigFromConsulKV(*consulHost, *consulPort, *consulConfigKey)
	} else {
		cfg, err = config.LoadConfig(*configPath)
	}
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 装配存储与服务
	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatalf("failed to build services: %v", err)
	}

	// 启动统一的 HTTP 服务模板
	err = server.RunHTTPServer(cfg, log, a.Register,
		server.WithRateLimiter(middleware.NewTokenBucket(200, 100)),
	)
	if err != nil {
		log.Fatalf("rental-service exited with error: %v", err)
	}
}

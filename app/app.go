package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httpAdapter "dashboard-service/ddd/adapter/http"
	application "dashboard-service/ddd/application/app"
	"dashboard-service/ddd/application/state"
	"dashboard-service/ddd/domain/gateway"
	"dashboard-service/ddd/infrastructure/backend"
	"dashboard-service/ddd/infrastructure/poller"
	"dashboard-service/pkg/config"
	"dashboard-service/pkg/logger"
	"dashboard-service/pkg/middleware"
	"dashboard-service/pkg/registry"
	"dashboard-service/pkg/task"
)

func Run() {
	// 先使用标准输出确保能看到日志
	fmt.Println("[STARTUP] Starting dashboard service...")

	// 加载配置
	fmt.Println("[STARTUP] Loading config file...")
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	// 立即初始化日志服务
	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	logger.Debug("Logger initialized", map[string]interface{}{
		"level":  cfg.Log.Level,
		"format": cfg.Log.Format,
		"output": cfg.Log.Output,
	})

	logger.Infof("Dashboard service starting version=%s backend=%s", "1.0.0", cfg.Backend.BaseURL)

	// 后端网关与状态存储
	backendClient := backend.NewClient(cfg.Backend)
	store := state.NewStore()

	// 轮询器：每个资源独立节拍，clips仅在对应页签激活时拉取
	resourcePoller := poller.New(store, cfg.Backend.PollTimeout, cfg.Poll.MaxBackoffFactor,
		poller.Descriptor{
			Key:      state.KeyTasks,
			Interval: cfg.Poll.TasksInterval,
			Fetch: func(ctx context.Context) (interface{}, error) {
				return backendClient.ListTasks(ctx)
			},
		},
		poller.Descriptor{
			Key:      state.KeyDownloads,
			Interval: cfg.Poll.DownloadsInterval,
			Fetch: func(ctx context.Context) (interface{}, error) {
				return backendClient.ListDownloads(ctx)
			},
		},
		poller.Descriptor{
			Key:      state.KeyUpscaleTasks,
			Interval: cfg.Poll.UpscaleInterval,
			Fetch: func(ctx context.Context) (interface{}, error) {
				return backendClient.ListUpscaleTasks(ctx)
			},
		},
		poller.Descriptor{
			Key:      state.KeyInstanceStatus,
			Interval: cfg.Poll.InstanceStatusInterval,
			Fetch: func(ctx context.Context) (interface{}, error) {
				return backendClient.InstanceStatus(ctx)
			},
			// 状态查询失败时指示灯回落到unknown，而不是停留在旧状态
			OnError: func(error) (interface{}, bool) {
				return gateway.InstanceUnknown, true
			},
		},
		poller.Descriptor{
			Key:      state.KeyClips,
			Interval: cfg.Poll.ClipsInterval,
			Enabled: func() bool {
				return store.ActiveTab() == state.TabClips
			},
			Fetch: func(ctx context.Context) (interface{}, error) {
				return backendClient.ListClips(ctx)
			},
		},
	)

	// 应用服务
	dashboardApp := application.NewDashboardApp(backendClient, store, resourcePoller)

	// 启动后台任务
	task.Register(resourcePoller)
	if err := task.StartAll(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start background tasks error=%v", err))
	}
	logger.Infof("Background tasks started tasks=%v", task.Names())

	// 创建Gin引擎
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()

	router := httpAdapter.NewRouter(dashboardApp)
	router.SetupMiddleware(engine)
	engine.Use(middleware.RequestContextMiddleware())
	router.SetupRoutes(engine)

	// 启动HTTP服务器
	addr := cfg.Server.GetServerAddr()
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("Failed to start HTTP server error=%v", err))
		}
	}()
	logger.Infof("HTTP server started addr=%s health_url=http://%s/health", addr, addr)

	// 可选的etcd服务注册
	var serviceRegistry *registry.ServiceRegistry
	if cfg.ServiceRegistry.Enabled {
		registerAddr := cfg.ServiceRegistry.RegisterHost
		if registerAddr == "" {
			registerAddr = addr
		}
		serviceRegistry, err = registry.NewServiceRegistry(cfg.ServiceRegistry, registerAddr)
		if err != nil {
			logger.Errorf("Service registry unavailable error=%v", err)
		} else if err := serviceRegistry.Register(); err != nil {
			logger.Errorf("Service registration failed error=%v", err)
		}
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Received shutdown signal, shutting down server...")

	if serviceRegistry != nil {
		if err := serviceRegistry.Deregister(); err != nil {
			logger.Warnf("Service deregistration failed error=%v", err)
		}
	}

	// 停止轮询等后台任务
	task.StopAll()
	logger.Infof("Background tasks stopped")

	// 设置5秒超时
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("Server forced to close error=%v", err))
	}

	logger.Infof("Server exited safely")

	// 关闭日志服务
	if logService != nil {
		logService.Close()
	}

	fmt.Println("[SHUTDOWN] Dashboard service exited safely")
}

// resolveConfigPath 根据环境选择配置文件，支持CONFIG_PATH覆盖、CONFIG_ENV区分环境
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	env := strings.ToLower(strings.TrimSpace(os.Getenv("CONFIG_ENV")))
	if env == "" {
		env = "dev"
	}

	switch env {
	case "prod", "production":
		return "configs/config_prod.yaml"
	case "dev", "development":
		return "configs/config.dev.yaml"
	default:
		return fmt.Sprintf("configs/config.%s.yaml", env)
	}
}

package http

import (
	"github.com/gin-gonic/gin"

	"dashboard-service/ddd/application/app"
)

// Router 路由配置
type Router struct {
	dashboardApp app.DashboardApp
}

// NewRouter 创建路由配置
func NewRouter(dashboardApp app.DashboardApp) *Router {
	return &Router{
		dashboardApp: dashboardApp,
	}
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// 创建控制器
	dashboardController := NewDashboardController(r.dashboardApp)
	upscaleController := NewUpscaleController(r.dashboardApp)

	// 渲染层API路由组
	api := engine.Group("/api")
	{
		// 全量视图与视图状态
		api.GET("/state", dashboardController.GetState) // 读取一致快照
		api.PUT("/view", dashboardController.SetView)   // 上报页签/筛选变更

		// 剪辑流水线指令
		tasks := api.Group("/tasks")
		{
			tasks.POST("", dashboardController.CreateTask)                  // 创建任务
			tasks.DELETE("", dashboardController.ClearTasks)                // 清空任务
			tasks.POST("/:task_id/retry", dashboardController.RetryTask)    // 重试任务
			tasks.DELETE("/:task_id", dashboardController.DeleteTask)       // 删除任务
			tasks.GET("/:task_id/clips", dashboardController.GetTaskClips)  // 任务片段
		}

		// 片段指令
		api.GET("/clips/:clip_id", dashboardController.GetClip)      // 单个片段
		api.PATCH("/clips/:clip_id", dashboardController.UpdateClip) // 修补片段

		// 下载历史指令
		api.DELETE("/downloads/:download_id", dashboardController.DeleteDownload) // 删除记录

		// 放大流水线指令
		upscale := api.Group("/upscale")
		{
			upscale.POST("/scan", upscaleController.TriggerScan)              // 触发重扫
			upscale.POST("/ensure", upscaleController.EnsureInstance)         // 启动实例
			upscale.GET("/settings", upscaleController.GetSettings)           // 读取配置
			upscale.PUT("/settings", upscaleController.SaveSettings)          // 保存配置
			upscale.DELETE("/tasks", upscaleController.ClearTasks)            // 清空任务
			upscale.POST("/tasks/:task_id/retry", upscaleController.RetryTask) // 重试任务
			upscale.DELETE("/tasks/:task_id", upscaleController.DeleteTask)   // 删除任务
		}
	}

	// 健康检查路由
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dashboard-service",
			"version": "1.0.0",
		})
	})
}

// SetupMiddleware 设置中间件
func (r *Router) SetupMiddleware(engine *gin.Engine) {
	// CORS中间件
	engine.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 请求日志中间件
	engine.Use(gin.Logger())

	// 恢复中间件
	engine.Use(gin.Recovery())
}

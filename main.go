package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"simba-catalog-server/internal/config"
	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/db"
	"simba-catalog-server/internal/di"
	"simba-catalog-server/internal/platform/redisx"
	"simba-catalog-server/internal/platform/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()

	imageStore := ensureImageStore()

	app, err := di.InitializeApplication(db.DB, imageStore)
	if err != nil {
		log.Fatalf("❌ 应用初始化失败: %v", err)
	}

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	applyTrustedProxies(r, config.Get().Server.TrustedProxies)
	app.Router.Init(r)
	r.NoRoute(noRouteHandler)

	// 导出模式
	if *exportRoutes {
		exportAPI(r)
		return
	}

	// 提前建立 Redis 连接，未启用时为空操作
	redisx.GetClient()

	printWelcomeMessage()

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}
	if err := redisx.Close(); err != nil {
		log.Printf("⚠️ %v", err)
	}
	log.Println("✅ 服务已退出")
}

// ensureImageStore 校验图片目录位置并创建目录
func ensureImageStore() *storage.ImageStore {
	uploadPath := config.Get().Upload.Path
	checkSecurePath(uploadPath)

	imageStore, err := storage.NewImageStoreFromConfig()
	if err != nil {
		log.Fatal("❌ 无法创建图片目录: ", err)
	}
	return imageStore
}

func noRouteHandler(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// applyTrustedProxies 按配置设置可信代理，未配置或格式错误时不信任任何代理
func applyTrustedProxies(r *gin.Engine, raw string) {
	proxies := splitTrustedProxyList(raw)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Printf("⚠️ server.trusted_proxies 无效，已禁用可信代理: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
}

func splitTrustedProxyList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
}

func printWelcomeMessage() {
	cfg := config.Get()

	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🖼️  图片目录 : %s\n", cfg.Upload.Path)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine) {
	routes := r.Routes()

	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	_ = os.WriteFile("routes.json", file, 0644)

	println("✅ 路由已成功导出到 routes.json")
}

func checkSecurePath(path string) {
	if err := validateSecurePath(path); err != nil {
		log.Fatalf("❌ 安全配置错误: %v", err)
	}
}

// validateSecurePath 图片目录会被整体公开，不能是项目根目录，
// 位于项目内时必须落在约定的静态目录下
func validateSecurePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("无法获取当前工作目录: %w", err)
	}

	if absPath == cwd {
		return fmt.Errorf("图片目录 '%s' 不能设置为项目根目录", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}

	relSlash := filepath.ToSlash(rel)
	allowedDirs := []string{
		"uploads",
		"public",
		"assets",
		"static",
		"tmp",
	}

	firstComponent := strings.Split(relSlash, "/")[0]
	for _, allowed := range allowedDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("图片目录 '%s' (解析为: '%s') 必须位于项目根目录下的安全子目录中 (如 %v)", path, relSlash, allowedDirs)
}

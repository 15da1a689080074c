//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.cursorfx -o build/android/cursorfx.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CursorFX.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/cursorfx/pkg/app"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	data, err := embedded.ReadFile(config.DefaultEffectConfigPath)
	if err != nil {
		log.Fatalf("特效配置读取失败: %v", err)
	}
	effectCfg, err := config.ParseEffectConfig(data)
	if err != nil {
		log.Fatalf("特效配置解析失败: %v", err)
	}

	// 触摸屏没有悬停，只跟踪手指
	gameApp, err := app.NewApp(app.Config{
		Verbose:   true,
		TouchOnly: true,
		Effect:    effectCfg,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

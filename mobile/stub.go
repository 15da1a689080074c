//go:build !mobile

// Package mobile 的桌面端占位
//
// 绑定代码（mobile.go、embed.go）只在 -tags mobile 下编译，
// 普通构建时包里只剩这个文件，保证 ./... 仍然可以编译。
package mobile

// Dummy 空导出函数，gomobile bind 之外没有调用者
func Dummy() {}

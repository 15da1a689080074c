package utils

import "math"

// 插值与缓动
//
// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b；每帧以固定 t 调用即为指数缓动
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// IsFinite 既不是 NaN 也不是 ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

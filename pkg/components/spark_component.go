package components

import "image/color"

// SparkComponent 指针移动时发射的火花
//
// 与 ParticleComponent 不同，火花会被创建和销毁：Life 归零即移除。
type SparkComponent struct {
	X  float64
	Y  float64
	VX float64
	VY float64

	Life    int // 剩余生命（帧）
	MaxLife int

	Size float64

	// 起止颜色，按生命进度插值
	StartColor color.NRGBA
	EndColor   color.NRGBA
}

// Progress 返回生命进度 [0,1]，0 为刚生成
func (s *SparkComponent) Progress() float64 {
	if s.MaxLife <= 0 {
		return 1
	}
	p := 1 - float64(s.Life)/float64(s.MaxLife)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

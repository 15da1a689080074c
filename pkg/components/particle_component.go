package components

import "image/color"

// ParticleComponent 光标特效中的单个粒子
//
// 粒子由 ParticlePool 独占持有，按索引存放在连续切片中；
// 其他模块不保存指向粒子的引用。
//
// This is a pure data component - it contains no methods.
type ParticleComponent struct {
	// Position (像素)
	X float64
	Y float64

	// Velocity (像素/帧)
	VX float64
	VY float64

	// Wander 漂移速度：摩擦力把速度拉向该值，指针离开后粒子保持缓慢漂移
	WanderX float64
	WanderY float64

	// BaseSize 生成时确定，所有渲染尺寸都以此缩放
	BaseSize float64

	// Orbit slot (轨道槽位，相对锚点的极坐标)
	// 生成时分配一次，用于错开各粒子的环绕半径
	OrbitAngle  float64
	OrbitRadius float64

	// BreathePhase 呼吸动画相位偏移
	BreathePhase float64

	// Spin 切向环绕方向（+1 逆时针 / -1 顺时针）
	Spin float64

	// Alpha 当前透明度 [0,1]，每帧向目标值缓动
	Alpha float64

	// Color 生成时从调色板选取
	Color color.NRGBA
}

package systems

import "github.com/decker502/cursorfx/pkg/components"

// PointerSystem 指针追踪
//
// 宿主的指针事件回调直接调用 HandleMove / HandleLeave，
// 模拟步骤通过 State 读取同一份记录。
type PointerSystem struct {
	state components.PointerComponent

	// hasPrev 是否存在上一次记录的位置（用于计算速度）
	hasPrev bool
}

// NewPointerSystem 创建指针追踪系统，初始状态为不在场
func NewPointerSystem() *PointerSystem {
	return &PointerSystem{}
}

// HandleMove 记录新位置，速度为与上一次记录位置之差
//
// 没有上一次位置（首次移动或离开后重新进入）时速度为 0。
func (s *PointerSystem) HandleMove(x, y float64) {
	if s.hasPrev {
		s.state.VX = x - s.state.X
		s.state.VY = y - s.state.Y
	} else {
		s.state.VX = 0
		s.state.VY = 0
	}

	s.state.X = x
	s.state.Y = y
	s.state.Present = true
	s.state.Seq++
	s.hasPrev = true
}

// HandleLeave 指针离开跟踪区域，位置置为不在场
func (s *PointerSystem) HandleLeave() {
	s.state.Present = false
	s.state.X, s.state.Y = 0, 0
	s.state.VX, s.state.VY = 0, 0
	s.hasPrev = false
}

// State 返回当前指针状态的只读副本
func (s *PointerSystem) State() components.PointerComponent {
	return s.state
}

package systems

import (
	"log"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/decker502/cursorfx/pkg/components"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/utils"
)

// ParticleSystem 模拟步骤：每帧按指针读数推进全部粒子一帧
//
// 力学模型（每粒子每帧）：
//  1. 指针不在场：透明度指数衰减到 0，速度经摩擦趋向漂移速度，粒子继续滑行
//  2. 指针在场：计算到锚点的位移和距离，目标透明度 ((R-d)/R)^k，透明度向目标缓动
//  3. 环绕区 coreRadius <= d < R：朝轨道半径的径向吸引 + 切向环绕 + 指针拖拽
//  4. 核心区 d < coreRadius：随距离减小而增强的排斥
//  5. 所有分区都施加摩擦（< 1），并限制最大速度
//  6. 显式欧拉积分 position += velocity，然后越界环绕
//
// 锚点由 harmonica 临界阻尼弹簧平滑跟随指针，避免指针瞬移造成的冲击。
type ParticleSystem struct {
	cfg     *config.EffectConfig
	pool    *ParticlePool
	pointer *PointerSystem

	spring harmonica.Spring

	anchorX, anchorY   float64
	anchorVX, anchorVY float64
	anchorValid        bool

	// lastSeq 上一帧看到的指针移动序号
	lastSeq uint64

	// resets 因数值异常被重置的粒子累计数
	resets int
}

// NewParticleSystem 创建模拟系统
func NewParticleSystem(cfg *config.EffectConfig, pool *ParticlePool, pointer *PointerSystem) *ParticleSystem {
	return &ParticleSystem{
		cfg:     cfg,
		pool:    pool,
		pointer: pointer,
		spring:  harmonica.NewSpring(harmonica.FPS(60), cfg.Anchor.Frequency, cfg.Anchor.Damping),
	}
}

// Anchor 返回当前锚点；指针不在场时 ok 为 false
func (s *ParticleSystem) Anchor() (x, y float64, ok bool) {
	return s.anchorX, s.anchorY, s.anchorValid
}

// Resets 返回因数值异常而重置的粒子累计数
func (s *ParticleSystem) Resets() int {
	return s.resets
}

// Update 推进一帧
func (s *ParticleSystem) Update() {
	ptr := s.pointer.State()

	// 只有本帧内发生过移动时，指针速度才参与拖拽
	var dragX, dragY float64
	if ptr.Present && ptr.Seq != s.lastSeq {
		dragX, dragY = ptr.VX, ptr.VY
	}
	s.lastSeq = ptr.Seq

	s.updateAnchor(ptr)

	particles := s.pool.Particles()
	for i := range particles {
		p := &particles[i]

		if s.anchorValid {
			s.applyPointerForces(p, dragX, dragY)
		} else {
			s.applyAbsentForces(p)
		}

		s.integrate(p)

		if !isFiniteParticle(p) {
			s.pool.Reset(i)
			s.resets++
			log.Printf("[ParticleSystem] particle %d became non-finite, respawned", i)
			continue
		}

		s.pool.wrap(p)
	}
}

// updateAnchor 指针在场时用弹簧追随指针；首次出现时直接对齐
func (s *ParticleSystem) updateAnchor(ptr components.PointerComponent) {
	if !ptr.Present || !utils.IsFinite(ptr.X) || !utils.IsFinite(ptr.Y) {
		s.anchorValid = false
		return
	}

	if !s.anchorValid {
		s.anchorX, s.anchorY = ptr.X, ptr.Y
		s.anchorVX, s.anchorVY = 0, 0
		s.anchorValid = true
		return
	}

	s.anchorX, s.anchorVX = s.spring.Update(s.anchorX, s.anchorVX, ptr.X)
	s.anchorY, s.anchorVY = s.spring.Update(s.anchorY, s.anchorVY, ptr.Y)
}

func (s *ParticleSystem) applyAbsentForces(p *components.ParticleComponent) {
	p.Alpha = utils.Clamp01(utils.Lerp(p.Alpha, 0, s.cfg.Opacity.Fade))

	// 摩擦把速度拉向漂移速度，粒子保持缓慢滑行
	f := s.cfg.Forces.Friction
	p.VX = p.WanderX + (p.VX-p.WanderX)*f
	p.VY = p.WanderY + (p.VY-p.WanderY)*f
}

func (s *ParticleSystem) applyPointerForces(p *components.ParticleComponent, dragX, dragY float64) {
	z := s.cfg.Zones
	f := s.cfg.Forces
	o := s.cfg.Opacity

	dx := s.anchorX - p.X
	dy := s.anchorY - p.Y
	dist := math.Hypot(dx, dy)

	// 与锚点重合时方向不确定，改用轨道角方向，保证核心排斥仍能把粒子推开
	var nx, ny float64
	if dist < f.MinDistance {
		nx, ny = -math.Cos(p.OrbitAngle), -math.Sin(p.OrbitAngle)
	} else {
		nx, ny = dx/dist, dy/dist
	}

	// 目标透明度随距离单调递减，影响半径外为 0
	target := 0.0
	if dist < z.OrbitZone {
		target = math.Pow((z.OrbitZone-dist)/z.OrbitZone, o.Falloff)
	}
	p.Alpha = utils.Clamp01(utils.Lerp(p.Alpha, target, o.Ease))

	switch {
	case dist < z.CoreRadius:
		push := f.CoreRepulsion * (z.CoreRadius - dist) / z.CoreRadius
		p.VX -= nx * push
		p.VY -= ny * push

	case dist < z.OrbitZone:
		proximity := 1 - dist/z.OrbitZone
		band := z.OrbitZone - z.CoreRadius

		// 径向：朝自身轨道半径收拢（在轨道外吸引，在轨道内推开）
		radial := f.Attraction * (0.25 + 0.75*proximity) * utils.Clamp((dist-p.OrbitRadius)/band, -1, 1)
		p.VX += nx * radial
		p.VY += ny * radial

		// 切向：(-ny, nx) 为逆时针方向
		tx, ty := -ny, nx
		sweep := f.Tangential * proximity * p.Spin
		// 指针自身的运动投影到切向上，移动的指针会带动粒子旋转
		sweep += f.PointerDrag * proximity * (dragX*tx + dragY*ty)
		p.VX += tx * sweep
		p.VY += ty * sweep

	default:
		p.VX += nx * f.Gather
		p.VY += ny * f.Gather
	}

	p.VX *= f.Friction
	p.VY *= f.Friction
}

func (s *ParticleSystem) integrate(p *components.ParticleComponent) {
	maxSpeed := s.cfg.Forces.MaxSpeed
	if speed := math.Hypot(p.VX, p.VY); speed > maxSpeed {
		p.VX *= maxSpeed / speed
		p.VY *= maxSpeed / speed
	}

	p.X += p.VX
	p.Y += p.VY
}

func isFiniteParticle(p *components.ParticleComponent) bool {
	return utils.IsFinite(p.X) && utils.IsFinite(p.Y) &&
		utils.IsFinite(p.VX) && utils.IsFinite(p.VY) &&
		utils.IsFinite(p.Alpha)
}

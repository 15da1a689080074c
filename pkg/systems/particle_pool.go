package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/cursorfx/pkg/components"
	"github.com/decker502/cursorfx/pkg/config"
)

// ParticlePool 固定容量的粒子池
//
// 粒子在挂载时一次性创建，之后从不销毁：Reset 在原位回收粒子。
// 池独占所有粒子记录；Particles 返回的切片只能在当前帧内使用，不可保存。
type ParticlePool struct {
	cfg     *config.EffectConfig
	palette int
	rng     *rand.Rand

	particles []components.ParticleComponent

	width  float64
	height float64

	slots slotGrid
}

// NewParticlePool 创建粒子池并按表面尺寸初始化全部粒子
//
// rng 为 nil 时使用基于当前时间的随机源；每个池持有独立的随机源。
func NewParticlePool(cfg *config.EffectConfig, width, height int, rng *rand.Rand) *ParticlePool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	n := cfg.Particles.Count
	pool := &ParticlePool{
		cfg:       cfg,
		palette:   len(cfg.PaletteColors()),
		rng:       rng,
		particles: make([]components.ParticleComponent, n),
		width:     float64(width),
		height:    float64(height),
		slots:     newSlotGrid(cfg.Zones.MinSlotSeparation, n),
	}

	for i := range pool.particles {
		pool.reset(i, true)
	}

	return pool
}

// Len 返回粒子数量
func (p *ParticlePool) Len() int {
	return len(p.particles)
}

// Particles 返回粒子切片（按池顺序）
func (p *ParticlePool) Particles() []components.ParticleComponent {
	return p.particles
}

// Bounds 返回当前工作区尺寸
func (p *ParticlePool) Bounds() (width, height float64) {
	return p.width, p.height
}

// Resize 更新工作区尺寸；粒子位置不变，越界粒子由下一帧的环绕处理收回
func (p *ParticlePool) Resize(width, height int) {
	p.width = float64(width)
	p.height = float64(height)
}

// Reset 在原位回收第 i 个粒子
func (p *ParticlePool) Reset(i int) {
	p.reset(i, false)
}

func (p *ParticlePool) reset(i int, initial bool) {
	cfg := p.cfg.Particles
	part := &p.particles[i]

	// 首次生成均匀分布；之后按概率均匀分布或从四条边之一外侧流入
	if initial || p.rng.Float64() < cfg.UniformSpawn {
		part.X = p.rng.Float64() * p.width
		part.Y = p.rng.Float64() * p.height
	} else {
		switch p.rng.Intn(4) {
		case 0: // 上
			part.X = p.rng.Float64() * p.width
			part.Y = -cfg.EdgeOffset
		case 1: // 右
			part.X = p.width + cfg.EdgeOffset
			part.Y = p.rng.Float64() * p.height
		case 2: // 下
			part.X = p.rng.Float64() * p.width
			part.Y = p.height + cfg.EdgeOffset
		default: // 左
			part.X = -cfg.EdgeOffset
			part.Y = p.rng.Float64() * p.height
		}
	}

	part.BaseSize = cfg.MinSize + p.rng.Float64()*(cfg.MaxSize-cfg.MinSize)
	part.VX = (p.rng.Float64() - 0.5) * cfg.DriftSpeed
	part.VY = (p.rng.Float64() - 0.5) * cfg.DriftSpeed
	part.WanderX = part.VX
	part.WanderY = part.VY

	part.BreathePhase = p.rng.Float64() * 2 * math.Pi
	part.Spin = 1
	if p.rng.Intn(2) == 0 {
		part.Spin = -1
	}
	if p.palette > 0 {
		part.Color = p.cfg.PaletteColors()[p.rng.Intn(p.palette)]
	}
	part.Alpha = 0

	p.pickOrbitSlot(i)
}

// pickOrbitSlot 为粒子分配轨道槽位
//
// 半径按面积均匀分布在 [coreRadius+10, orbitZone-10]。
// 最多尝试 SlotTries 次，保证与已有槽位间距不小于 MinSlotSeparation；
// 全部失败时使用不检查间距的随机槽位。
func (p *ParticlePool) pickOrbitSlot(i int) {
	z := p.cfg.Zones
	minR := z.CoreRadius + 10
	maxR := z.OrbitZone - 10
	minR2, maxR2 := minR*minR, maxR*maxR

	p.slots.remove(i)
	part := &p.particles[i]

	for tries := 0; tries < z.SlotTries; tries++ {
		angle := p.rng.Float64() * 2 * math.Pi
		radius := math.Sqrt(minR2 + p.rng.Float64()*(maxR2-minR2))
		sx, sy := math.Cos(angle)*radius, math.Sin(angle)*radius

		if p.slots.isFree(i, sx, sy, z.MinSlotSeparation) {
			part.OrbitAngle = angle
			part.OrbitRadius = radius
			p.slots.insert(i, sx, sy)
			return
		}
	}

	part.OrbitAngle = p.rng.Float64() * 2 * math.Pi
	part.OrbitRadius = math.Sqrt(minR2 + p.rng.Float64()*(maxR2-minR2))
	p.slots.insert(i, math.Cos(part.OrbitAngle)*part.OrbitRadius, math.Sin(part.OrbitAngle)*part.OrbitRadius)
}

// wrap 越过工作区 margin 的粒子移到对侧边缘外
func (p *ParticlePool) wrap(part *components.ParticleComponent) {
	m := p.cfg.Particles.WrapMargin

	if part.X < -m {
		part.X = p.width + m
	} else if part.X > p.width+m {
		part.X = -m
	}

	if part.Y < -m {
		part.Y = p.height + m
	} else if part.Y > p.height+m {
		part.Y = -m
	}
}

// slotCell 槽位空间中的网格坐标
type slotCell struct {
	cx, cy int
}

// slotGrid 轨道槽位的空间索引
//
// 槽位坐标是相对锚点的偏移量。格子边长等于最小间距，
// 因此只需检查相邻 3x3 个格子，不需要扫描全部粒子。
type slotGrid struct {
	cellSize float64
	cells    map[slotCell][]int

	// 每个粒子的槽位坐标，assigned 为 false 表示尚未分配
	x, y     []float64
	assigned []bool
}

func newSlotGrid(cellSize float64, n int) slotGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return slotGrid{
		cellSize: cellSize,
		cells:    make(map[slotCell][]int),
		x:        make([]float64, n),
		y:        make([]float64, n),
		assigned: make([]bool, n),
	}
}

func (g *slotGrid) cellOf(x, y float64) slotCell {
	return slotCell{cx: int(math.Floor(x / g.cellSize)), cy: int(math.Floor(y / g.cellSize))}
}

func (g *slotGrid) isFree(self int, x, y, minSep float64) bool {
	c := g.cellOf(x, y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, j := range g.cells[slotCell{cx: c.cx + dx, cy: c.cy + dy}] {
				if j == self {
					continue
				}
				if math.Hypot(x-g.x[j], y-g.y[j]) < minSep {
					return false
				}
			}
		}
	}
	return true
}

func (g *slotGrid) insert(i int, x, y float64) {
	g.x[i], g.y[i] = x, y
	g.assigned[i] = true
	c := g.cellOf(x, y)
	g.cells[c] = append(g.cells[c], i)
}

func (g *slotGrid) remove(i int) {
	if !g.assigned[i] {
		return
	}
	c := g.cellOf(g.x[i], g.y[i])
	members := g.cells[c]
	for k, j := range members {
		if j == i {
			members[k] = members[len(members)-1]
			members = members[:len(members)-1]
			break
		}
	}
	if len(members) == 0 {
		delete(g.cells, c)
	} else {
		g.cells[c] = members
	}
	g.assigned[i] = false
}
